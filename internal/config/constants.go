package config

// Version is reported by `pokerscript version`.
const Version = "0.3.0"

// TreeFileExt is the preferred extension for serialized syntax trees.
const TreeFileExt = ".ps.yaml"

// TreeFileExtensions are all recognized tree file extensions.
var TreeFileExtensions = []string{".ps.yaml", ".ps.yml", ".ps.json", ".yaml", ".yml", ".json"}

// ProjectFileName is the per-project configuration file.
const ProjectFileName = "pokerscript.yaml"

// Modifiers
const (
	ReadOnlyModifier = "constantPressure"
)

// Boolean literal lexemes
const (
	TrueLiteral  = "hit"
	FalseLiteral = "miss"
)

// Built-in type names
const (
	IntTypeName     = "chip"
	FloatTypeName   = "change"
	StringTypeName  = "stringBet"
	BooleanTypeName = "playingOnTilt"
)

// Assignment operators
const (
	AssignOp    = ":"
	IncrementBy = "incrementBy"
	DecrementBy = "decrementBy"
	IncrementOp = "+$"
	DecrementOp = "-$"
)

// Operator classes for binary expressions.
var (
	AdditiveOps   = []string{"+"}
	ArithmeticOps = []string{"-", "*", "/", "%", "**"}
	EqualityOps   = []string{"==", "!="}
	RelationalOps = []string{"<", "<=", ">", ">="}
	LogicalOps    = []string{"&&", "||"}
)

// Unary operators
const (
	NotOp    = "!"
	NegateOp = "-"
)
