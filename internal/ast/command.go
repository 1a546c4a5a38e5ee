package ast

// Command is the sum type of top-level declarations.
type Command interface {
	GetSpan() Span
	commandNode()
}

type CmdTypeAlias struct {
	Span Span
	Name string
	Def  Type
}

// ConsInfo is one data-constructor entry of a TypeDef: its name and its
// (possibly Poly-wrapped, possibly Arr-wrapped) scheme.
type ConsInfo struct {
	Name   string
	Scheme Type
}

type CmdTypeDef struct {
	Span     Span
	Name     string
	ConsList []ConsInfo
	Arity    int
}

type CmdTypeDeclare struct {
	Span Span
	Name string
	Ty   Type
}

type CmdTermDef struct {
	Span Span
	Bind *Bind
}

type CmdTermEval struct {
	Span Span
	Term Term
}

// ConfigValKind tags the payload of a reserved Config command.
type ConfigValKind int

const (
	ConfigInt ConfigValKind = iota
	ConfigBool
	ConfigString
)

type ConfigVal struct {
	Kind ConfigValKind
	I    int
	B    bool
	S    string
}

// CmdConfig is reserved: the parser never produces it, but the codec and
// normalizers must accept it structurally.
type CmdConfig struct {
	Span Span
	Name string
	Val  ConfigVal
}

func (c *CmdTypeAlias) GetSpan() Span   { return c.Span }
func (c *CmdTypeDef) GetSpan() Span     { return c.Span }
func (c *CmdTypeDeclare) GetSpan() Span { return c.Span }
func (c *CmdTermDef) GetSpan() Span     { return c.Span }
func (c *CmdTermEval) GetSpan() Span    { return c.Span }
func (c *CmdConfig) GetSpan() Span      { return c.Span }

func (c *CmdTypeAlias) commandNode()   {}
func (c *CmdTypeDef) commandNode()     {}
func (c *CmdTypeDeclare) commandNode() {}
func (c *CmdTermDef) commandNode()     {}
func (c *CmdTermEval) commandNode()    {}
func (c *CmdConfig) commandNode()      {}

// DecoratedCommand is a command preceded by zero or more @name decorators.
type DecoratedCommand struct {
	Command Command
	Decos   []string
}

// Program is an ordered sequence of decorated commands.
type Program []DecoratedCommand
