package cond

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// String returns the condition in native syntax with only the parentheses
// needed to preserve the tree. Parsing the result yields an equal tree.
func (a *AST) String() string {
	if a == nil || a.Root == nil {
		return ""
	}

	return a.Root.String()
}

func (n BinaryOp) String() string {
	var sb strings.Builder

	writeOperand(&sb, n.Left, n.Op.Precedence(), false)
	sb.WriteByte(' ')
	sb.WriteString(n.Op.String())
	sb.WriteByte(' ')
	writeOperand(&sb, n.Right, n.Op.Precedence(), true)

	return sb.String()
}

// writeOperand writes an operand of an operator with precedence prec.
// All operators are left-associative, so a right operand at the same level
// needs parentheses and a left one does not.
func writeOperand(sb *strings.Builder, n Node, prec int, right bool) {
	b, ok := n.(BinaryOp)
	if ok && (b.Op.Precedence() < prec || (right && b.Op.Precedence() == prec)) {
		sb.WriteByte('(')
		sb.WriteString(b.String())
		sb.WriteByte(')')

		return
	}

	sb.WriteString(n.String())
}

// ToMap converts the AST to a map representation suitable for encoding.
func (a *AST) ToMap() map[string]any {
	return map[string]any{
		"source": a.Source,
		"root":   nodeMap(a.Root),
	}
}

func nodeMap(n Node) map[string]any {
	switch n := n.(type) {
	case Literal:
		b, _ := n.Value.Bool()

		return map[string]any{"literal": b}

	case TimeSpan:
		span := map[string]any{
			"count": n.Count,
			"unit":  n.Unit.String(),
		}

		if secs, ok := mul(n.Count, n.Unit.Seconds()); ok {
			span["seconds"] = secs
		}

		return map[string]any{"span": span}

	case Keyword:
		return map[string]any{"keyword": n.Name.String()}

	case BinaryOp:
		return map[string]any{
			"op":    n.Op.String(),
			"left":  nodeMap(n.Left),
			"right": nodeMap(n.Right),
		}

	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (a *AST) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToMap())
}

// FormatJSON writes the AST as JSON to the writer.
func (a *AST) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(a.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(a.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the AST as YAML to the writer.
func (a *AST) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, a.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Format writes the condition in native syntax followed by a newline.
func (a *AST) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, a.String())

	return err
}

// Print writes an indented outline of the tree, one node per line.
func (a *AST) Print(w io.Writer) error {
	return printNode(w, a.Root, 0)
}

func printNode(w io.Writer, n Node, depth int) error {
	pad := strings.Repeat("  ", depth)

	b, ok := n.(BinaryOp)
	if !ok {
		_, err := fmt.Fprintf(w, "%s%s\n", pad, describe(n))

		return err
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", pad, b.Op); err != nil {
		return err
	}

	if err := printNode(w, b.Left, depth+1); err != nil {
		return err
	}

	return printNode(w, b.Right, depth+1)
}

// describe labels a leaf node with its kind.
func describe(n Node) string {
	switch n := n.(type) {
	case Literal:
		return "Literal " + n.String()
	case TimeSpan:
		return "TimeSpan " + n.String()
	case Keyword:
		return "Keyword " + n.String()
	default:
		return "<nil>"
	}
}
