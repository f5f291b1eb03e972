package ast

// Visitor provides an interface for traversing a schema tree.
// Implement this interface to perform operations on marks
// (linting, preflight checks, analysis, etc.).
type Visitor interface {
	VisitSDM(*SDM) error
	VisitTDM(*TDM) error
	VisitTNode(*TNode) error
}

// Walk traverses the tree starting from the given structure and calls the
// visitor for each mark and type node in tree order. It returns the first
// error encountered, or nil if traversal completes.
func Walk(root *SDM, visitor Visitor) error {
	if err := visitor.VisitSDM(root); err != nil {
		return err
	}

	for _, child := range root.Children {
		switch c := child.(type) {
		case *SDM:
			if err := Walk(c, visitor); err != nil {
				return err
			}
		case *TDM:
			if err := visitor.VisitTDM(c); err != nil {
				return err
			}
			if err := walkSeg(c.Seg, visitor); err != nil {
				return err
			}
		}
	}

	return nil
}

// walkSeg recursively walks a union and the template arguments of its members.
func walkSeg(seg TSeg, visitor Visitor) error {
	for _, node := range seg.Nodes {
		if err := visitor.VisitTNode(node); err != nil {
			return err
		}
		if err := walkSeg(node.Args, visitor); err != nil {
			return err
		}
	}
	return nil
}
