package atlas

// record mirrors the kind of heterogeneous value the accessors are built
// for: plain fields, nested containers, and callable members.
type record struct {
	A        string
	B        string
	One      int
	Two      int
	DictData map[string]any
	ListData []any
	Hook     func() string

	captured any
}

func (r *record) Capture(v any) { r.captured = v }

func (r *record) Greeting() string { return "hello " + r.A }

func newRecord() *record {
	return &record{
		A:        "a data",
		B:        "b data",
		One:      1,
		Two:      2,
		DictData: newDict(),
		ListData: newList(),
		Hook:     func() string { return "hooked" },
	}
}

func newDict() map[string]any {
	return map[string]any{
		"a":    "a value",
		"b":    "b value",
		"list": []any{"one", "two"},
		"nested": map[string]any{
			"one key": "one value",
			"two key": "two value",
		},
	}
}

func newList() []any {
	return []any{"zero", "one", map[string]any{"key": "value"}}
}
