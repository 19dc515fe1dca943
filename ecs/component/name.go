package component

type Name struct {
	Value  string
	Prefab string
}

var NameComponent = NewComponent[Name]()
