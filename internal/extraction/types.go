package extraction

// Kind tags a StructureEntry with the declaration shape it was built from.
type Kind string

const (
	KindInterface Kind = "Interface"
	KindClass     Kind = "Class"
	KindFunction  Kind = "Function"
)

// StructureEntry is one extracted declaration: its kind plus its metadata record.
// A file's extraction result is an ordered slice of entries in source order.
type StructureEntry struct {
	Kind Kind     `json:"kind" yaml:"kind"`
	Meta Metadata `json:"meta" yaml:"meta"`
}

// Metadata is implemented by *InterfaceMeta, *ClassMeta and *FunctionMeta.
type Metadata interface {
	DeclName() string
	isMetadata()
}

// InterfaceMeta describes an interface declaration.
type InterfaceMeta struct {
	Name  string      `json:"name" yaml:"name"`
	Props []FieldMeta `json:"props" yaml:"props"`
}

// ClassMeta describes a class declaration.
type ClassMeta struct {
	Name        string           `json:"name" yaml:"name"`
	Constructor *ConstructorMeta `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Props       []FieldMeta      `json:"props" yaml:"props"`
}

// FunctionMeta describes a function declaration or signature.
type FunctionMeta struct {
	Name        string      `json:"name" yaml:"name"`
	Params      []FieldMeta `json:"params" yaml:"params"`
	ReturnTypes [][]string  `json:"returnTypes" yaml:"returnTypes"`
}

// ConstructorMeta describes a class constructor.
type ConstructorMeta struct {
	Params   []FieldMeta `json:"params" yaml:"params"`
	Comments []string    `json:"comments" yaml:"comments"`
}

// FieldMeta is the normalized record for one named, typed member
// (interface property, class property or parameter).
//
// Types holds one alternative per union member. Each alternative is a slice
// of resolved names; in practice it has exactly one element.
type FieldMeta struct {
	Name     string     `json:"name" yaml:"name"`
	Optional bool       `json:"optional" yaml:"optional"`
	Types    [][]string `json:"types" yaml:"types"`
	Comments []string   `json:"comments" yaml:"comments"`
}

func (m *InterfaceMeta) DeclName() string { return m.Name }
func (m *ClassMeta) DeclName() string     { return m.Name }
func (m *FunctionMeta) DeclName() string  { return m.Name }

func (*InterfaceMeta) isMetadata() {}
func (*ClassMeta) isMetadata()     {}
func (*FunctionMeta) isMetadata()  {}
