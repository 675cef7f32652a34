package ast

import (
	"fmt"
	"strings"
)

func (n *Or) String() string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return strings.Join(parts, " || ")
}

func (n *And) String() string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}

func (n *Not) String() string {
	return fmt.Sprintf("!%s", n.Child.String())
}

func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

func (n *Atom) String() string {
	return fmt.Sprintf("%s %s %s", n.Left.String(), n.Op.String(), n.Right.String())
}

func (n *Ident) String() string {
	return n.Name
}

func (n *NumberLit) String() string {
	return n.Literal
}

func (n *Neg) String() string {
	return fmt.Sprintf("-%s", n.Child.String())
}

func (n *ArithBinary) String() string {
	return fmt.Sprintf("%s %s %s", n.Left.String(), n.Op.String(), n.Right.String())
}

func (n *Abs) String() string {
	return fmt.Sprintf("abs(%s)", n.X.String())
}

func (n *Paren) String() string {
	return fmt.Sprintf("(%s)", n.X.String())
}

func (n *BadExpr) String() string {
	return fmt.Sprintf("BadExpr: %s", n.Reason)
}
