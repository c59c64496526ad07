// Package scenario loads the YAML scenarios replayed by the nestedscroll CLI.
package scenario

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/nestedscroll/pkg/errors"
	"github.com/go-drift/nestedscroll/pkg/nestedscroll"
)

// Defaults applied to fields a scenario leaves out.
const (
	DefaultDensity  = 2.0
	DefaultViewport = 600
	DefaultFrames   = 600
)

// Node kinds.
const (
	KindPlain  = "plain"
	KindParent = "parent"
	KindChild  = "child"
)

// Scenario is a view tree plus the steps to replay against it.
type Scenario struct {
	Version string  `yaml:"version"`
	Name    string  `yaml:"name,omitempty"`
	Density float64 `yaml:"density,omitempty"`
	Root    Node    `yaml:"root"`
	Steps   []Step  `yaml:"steps"`

	// File is the path the scenario was loaded from, if any.
	File string `yaml:"-"`
}

// Node describes one element of the view tree.
type Node struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind,omitempty"`
	Viewport int    `yaml:"viewport,omitempty"`
	Content  int    `yaml:"content,omitempty"`
	Children []Node `yaml:"children,omitempty"`
}

// Step is one scripted action. Which fields matter depends on Op.
type Step struct {
	Op       string    `yaml:"op"`
	Node     string    `yaml:"node,omitempty"`
	Class    string    `yaml:"class,omitempty"`
	Axes     string    `yaml:"axes,omitempty"`
	DX       int       `yaml:"dx,omitempty"`
	DY       int       `yaml:"dy,omitempty"`
	Deltas   []float64 `yaml:"deltas,omitempty"`
	Velocity float64   `yaml:"velocity,omitempty"`
	Frames   int       `yaml:"frames,omitempty"`
	Offset   *int      `yaml:"offset,omitempty"`
}

// Step operations.
const (
	OpStart     = "start"
	OpStop      = "stop"
	OpPreScroll = "prescroll"
	OpScroll    = "scroll"
	OpDrag      = "drag"
	OpFling     = "fling"
	OpSettle    = "settle"
	OpDetach    = "detach"
	OpEnable    = "enable"
	OpDisable   = "disable"
	OpExpect    = "expect"
)

// opKinds lists the node kinds each operation can target. A nil entry means
// the operation takes no node.
var opKinds = map[string][]string{
	OpStart:     {KindParent, KindChild},
	OpStop:      {KindParent, KindChild},
	OpPreScroll: {KindParent, KindChild},
	OpScroll:    {KindParent, KindChild},
	OpDrag:      {KindChild},
	OpFling:     {KindParent, KindChild},
	OpSettle:    nil,
	OpDetach:    {KindPlain, KindParent, KindChild},
	OpEnable:    {KindParent, KindChild},
	OpDisable:   {KindParent, KindChild},
	OpExpect:    {KindParent, KindChild},
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("scenario.Load", errors.KindConfig, fmt.Errorf("failed to read scenario: %w", err))
	}
	return Parse(path, data)
}

// Parse decodes a scenario from data and validates it. file is only used in
// error messages. Unknown fields are rejected.
func Parse(file string, data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if stderrors.Is(err, io.EOF) {
			err = fmt.Errorf("empty scenario")
		}
		return nil, errors.New("scenario.Parse", errors.KindConfig, fmt.Errorf("failed to parse %s: %w", displayName(file), err))
	}
	sc.File = file
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario and fills in defaults.
func (sc *Scenario) Validate() error {
	if err := checkVersion(sc.Version); err != nil {
		return sc.invalid("version", err)
	}
	if sc.Density == 0 {
		sc.Density = DefaultDensity
	}
	if sc.Density < 0 {
		return sc.invalid("density", sc.Density)
	}

	kinds := make(map[string]string)
	if err := sc.validateNode(&sc.Root, "root", kinds); err != nil {
		return err
	}

	for i := range sc.Steps {
		if err := sc.validateStep(i, &sc.Steps[i], kinds); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Scenario) validateNode(n *Node, path string, kinds map[string]string) error {
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return sc.invalid(path+".name", `""`)
	}
	if _, dup := kinds[n.Name]; dup {
		return sc.invalid(path+".name", n.Name+" (duplicate)")
	}
	if n.Kind == "" {
		n.Kind = KindPlain
	}
	switch n.Kind {
	case KindPlain:
	case KindParent, KindChild:
		if n.Viewport == 0 {
			n.Viewport = DefaultViewport
		}
		if n.Viewport < 0 {
			return sc.invalid(path+".viewport", n.Viewport)
		}
		if n.Content < 0 {
			return sc.invalid(path+".content", n.Content)
		}
	default:
		return sc.invalid(path+".kind", n.Kind)
	}
	kinds[n.Name] = n.Kind

	for i := range n.Children {
		if err := sc.validateNode(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i), kinds); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Scenario) validateStep(i int, s *Step, kinds map[string]string) error {
	path := fmt.Sprintf("steps[%d]", i)
	allowed, ok := opKinds[s.Op]
	if !ok {
		return sc.invalid(path+".op", s.Op)
	}

	if allowed != nil {
		kind, known := kinds[s.Node]
		if !known {
			return sc.invalid(path+".node", s.Node)
		}
		if !slices.Contains(allowed, kind) {
			return sc.invalid(path+".node", fmt.Sprintf("%s (%s cannot %s)", s.Node, kind, s.Op))
		}
	}

	if _, ok := ParseClass(s.Class); !ok {
		return sc.invalid(path+".class", s.Class)
	}
	if _, ok := ParseAxes(s.Axes); !ok {
		return sc.invalid(path+".axes", s.Axes)
	}

	switch s.Op {
	case OpSettle:
		if s.Frames == 0 {
			s.Frames = DefaultFrames
		}
		if s.Frames < 0 {
			return sc.invalid(path+".frames", s.Frames)
		}
	case OpExpect:
		if s.Offset == nil {
			return sc.invalid(path+".offset", "nothing")
		}
	}
	return nil
}

func (sc *Scenario) invalid(field string, got any) error {
	return errors.New("scenario.Validate", errors.KindConfig, &errors.ParseError{
		File:  sc.File,
		Field: field,
		Got:   got,
	})
}

// checkVersion accepts any valid semantic version with major version v1.
func checkVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%q is not a semantic version", v)
	}
	if major := semver.Major(v); major != "v1" {
		return fmt.Errorf("unsupported major version %s", major)
	}
	return nil
}

// ParseClass maps a class name to a gesture class. An empty name is the
// User class.
func ParseClass(s string) (nestedscroll.GestureClass, bool) {
	switch strings.ToLower(s) {
	case "", "user":
		return nestedscroll.User, true
	case "programmatic":
		return nestedscroll.Programmatic, true
	default:
		return 0, false
	}
}

// ParseAxes maps an axes name to a mask. An empty name is vertical.
func ParseAxes(s string) (nestedscroll.Axis, bool) {
	switch strings.ToLower(s) {
	case "", "vertical":
		return nestedscroll.AxisVertical, true
	case "horizontal":
		return nestedscroll.AxisHorizontal, true
	case "both":
		return nestedscroll.AxisBoth, true
	case "none":
		return nestedscroll.AxisNone, true
	default:
		return 0, false
	}
}

// Walk calls fn for every node, parents before children.
func (n *Node) Walk(parent *Node, fn func(parent, n *Node) error) error {
	if err := fn(parent, n); err != nil {
		return err
	}
	for i := range n.Children {
		if err := n.Children[i].Walk(n, fn); err != nil {
			return err
		}
	}
	return nil
}

func displayName(file string) string {
	if file == "" {
		return "scenario"
	}
	return file
}
