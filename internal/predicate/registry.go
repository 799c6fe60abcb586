package predicate

// Entry binds a criteria key and its command prefix to a predicate constructor.
type Entry struct {
	New    func(value string) (Predicate, error)
	Key    string
	Prefix string
}

// Registry lists every criteria kind in the order predicates are built.
// Commands that take several criteria always produce them in this order.
var Registry = []Entry{
	{Key: "name", Prefix: "n/", New: fieldCtor(FieldName)},
	{Key: "phone", Prefix: "p/", New: fieldCtor(FieldPhone)},
	{Key: "email", Prefix: "e/", New: fieldCtor(FieldEmail)},
	{Key: "job", Prefix: "j/", New: fieldCtor(FieldJob)},
	{Key: "status", Prefix: "s/", New: fieldCtor(FieldStatus)},
	{Key: "before", Prefix: "bd/", New: func(v string) (Predicate, error) {
		p, err := NewCreatedBefore(v)
		if err != nil {
			return nil, err
		}
		return p, nil
	}},
	{Key: "after", Prefix: "ad/", New: func(v string) (Predicate, error) {
		p, err := NewCreatedAfter(v)
		if err != nil {
			return nil, err
		}
		return p, nil
	}},
}

func fieldCtor(field Field) func(string) (Predicate, error) {
	return func(v string) (Predicate, error) {
		p, err := NewFieldEquals(field, v)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Prefixes returns the command prefixes of every registered criteria kind.
func Prefixes() []string {
	out := make([]string, len(Registry))
	for i, e := range Registry {
		out[i] = e.Prefix
	}
	return out
}

// Build constructs predicates from prefix-keyed values, walking the registry
// in declared order. Prefixes without a value are skipped.
func Build(values map[string]string) ([]Predicate, error) {
	var out []Predicate
	for _, e := range Registry {
		v, ok := values[e.Prefix]
		if !ok {
			continue
		}
		p, err := e.New(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
