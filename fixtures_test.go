package shifter

import (
	"testing"

	"github.com/a-peyrard/shifter/meta"
	"github.com/a-peyrard/shifter/option"
	"github.com/stretchr/testify/require"
)

const injectedValue = "Tron"

type Greeter interface {
	Greet() string
}

type DefaultGreeter struct{}

func (DefaultGreeter) Greet() string {
	return "hello"
}

type ParamGreeter struct {
	Param1        string
	FieldToInject string `inject:""`

	propertyInjected    string
	methodFieldInjected string
}

func NewParamGreeter(param1 string) *ParamGreeter {
	return &ParamGreeter{Param1: param1}
}

func (g *ParamGreeter) SetPropertyInjected(value string) {
	g.propertyInjected = value
}

func (g *ParamGreeter) InjectMethod(value string) {
	g.methodFieldInjected = value
}

func (g *ParamGreeter) Greet() string {
	return "hello " + g.Param1
}

type TwoParamGreeter struct {
	Param1 string
	Param2 *ParamGreeter
}

func NewTwoParamGreeter(param1 string, param2 *ParamGreeter) *TwoParamGreeter {
	return &TwoParamGreeter{Param1: param1, Param2: param2}
}

func (g *TwoParamGreeter) Greet() string {
	return "hello " + g.Param1 + " and " + g.Param2.Param1
}

type Multi struct {
	From string
}

func NewMultiA() *Multi {
	return &Multi{From: "A"}
}

func NewMultiB() *Multi {
	return &Multi{From: "B"}
}

type Hidden struct {
	via string
}

func newHidden() *Hidden {
	return &Hidden{via: "constructor"}
}

type Celsius float64

type Starter struct {
	started bool
}

func (s *Starter) Start() {
	s.started = true
}

type Ordered struct {
	Field string `inject:""`
	seen  []string
}

func (o *Ordered) SetProp(string) {
	o.seen = append(o.seen, "property field="+o.Field)
}

func (o *Ordered) Configure(string) {
	o.seen = append(o.seen, "method field="+o.Field)
}

type ValueHolder struct {
	Name string `inject:""`
}

type Secretive struct {
	name string `inject:""`
}

type Engine struct {
	Power int
}

type NeedsEngine struct {
	Engine *Engine `inject:""`
}

// newTestContainer creates a container knowing how to build the fixtures.
func newTestContainer(t *testing.T, opts ...option.Option[Options]) *Container {
	t.Helper()

	c := New(opts...)
	require.NoError(t, Declare[*ParamGreeter](c,
		meta.DeclareConstructor(NewParamGreeter),
		meta.DeclareProperty("PropertyInjected", meta.Inject()),
		meta.DeclareMethod("InjectMethod", meta.Inject()),
	))
	require.NoError(t, Declare[*TwoParamGreeter](c, meta.DeclareConstructor(NewTwoParamGreeter)))
	return c
}
