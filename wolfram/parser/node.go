package parser

import "strings"

type NodeKind int

const (
	KindLiteral NodeKind = iota
	KindSymbol
	KindUnaryOp
	KindBinaryOp
	KindNAryOp
	KindCall
	KindGroup
	KindList
	KindSequence
)

var nodeKindNames = map[NodeKind]string{
	KindLiteral:  "Literal",
	KindSymbol:   "Symbol",
	KindUnaryOp:  "UnaryOp",
	KindBinaryOp: "BinaryOp",
	KindNAryOp:   "NAryOp",
	KindCall:     "Call",
	KindGroup:    "Group",
	KindList:     "List",
	KindSequence: "Sequence",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one vertex of the syntax tree. Leaves (Literal, Symbol) carry
// their token; operator nodes carry the operator's display name in Op
// and their operands in order in Children. A Call node's first child is
// the head, the rest are the arguments. Nodes own their children
// exclusively; the tree shares nothing.
type Node struct {
	Kind     NodeKind
	Op       string
	Span     Span
	Token    *Token
	Children []*Node
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
		n.Span.End = child.Span.End
	}
}

// Head returns the head expression of a Call node.
func (n *Node) Head() *Node {
	if n.Kind == KindCall && len(n.Children) > 0 {
		return n.Children[0]
	}
	return nil
}

// Args returns the ordered arguments of a Call node.
func (n *Node) Args() []*Node {
	if n.Kind == KindCall && len(n.Children) > 1 {
		return n.Children[1:]
	}
	return nil
}

// Inner returns the wrapped expression of a Group node.
func (n *Node) Inner() *Node {
	if n.Kind == KindGroup && len(n.Children) == 1 {
		return n.Children[0]
	}
	return nil
}

func (n *Node) TokenText() string {
	if n.Token != nil {
		return n.Token.Text
	}
	return ""
}

// String renders the node as an s-expression, the golden format used by
// tests and the debug CLI: leaves print their source text, operator
// nodes print (Name operand...), calls print (Call head arg...).
func (n *Node) String() string {
	var sb strings.Builder
	n.writeSexpr(&sb)
	return sb.String()
}

func (n *Node) writeSexpr(sb *strings.Builder) {
	switch n.Kind {
	case KindLiteral, KindSymbol:
		sb.WriteString(n.TokenText())
		return
	}

	sb.WriteByte('(')
	switch n.Kind {
	case KindGroup:
		sb.WriteString("Group")
	case KindList:
		sb.WriteString("List")
	case KindSequence:
		sb.WriteString("Sequence")
	case KindCall:
		sb.WriteString("Call")
	default:
		sb.WriteString(n.Op)
	}
	for _, child := range n.Children {
		sb.WriteByte(' ')
		child.writeSexpr(sb)
	}
	sb.WriteByte(')')
}

func newLeaf(kind NodeKind, tok Token) *Node {
	t := tok
	return &Node{Kind: kind, Span: tok.Span, Token: &t}
}

func newOpNode(kind NodeKind, op string, start Position, children ...*Node) *Node {
	node := &Node{Kind: kind, Op: op, Span: Span{Start: start, End: start}}
	for _, child := range children {
		node.AddChild(child)
	}
	return node
}
