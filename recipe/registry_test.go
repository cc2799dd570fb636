package recipe

import (
	"errors"
	"testing"
)

func stubRecipe(name, group string) Recipe {
	return Recipe{
		Name:  name,
		Title: name,
		Group: group,
		Doc:   "stub",
		Params: []ParamSpec{
			{Name: "amount", Label: "Amount", Min: 0, Max: 1, Default: 0.5},
		},
		Build: func(BuildContext) (Node, error) { return &recordNode{}, nil },
	}
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(stubRecipe("alpha", GroupFilters)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec, err := r.Lookup("alpha")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Name != "alpha" {
		t.Fatalf("Lookup name = %q, want alpha", rec.Name)
	}

	if _, err := r.Lookup("missing"); !errors.Is(err, ErrUnknownRecipe) {
		t.Fatalf("Lookup(missing) = %v, want ErrUnknownRecipe", err)
	}
}

func TestRegistryRejectsBadRecipes(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(stubRecipe("", GroupFilters)); err == nil {
		t.Fatal("Register accepted an empty name")
	}

	rec := stubRecipe("nobuild", GroupFilters)
	rec.Build = nil
	if err := r.Register(rec); err == nil {
		t.Fatal("Register accepted a nil build function")
	}

	if err := r.Register(stubRecipe("dup", GroupFilters)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(stubRecipe("dup", GroupEffects)); err == nil {
		t.Fatal("Register accepted a duplicate name")
	}
}

func TestMustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(stubRecipe("once", GroupFilters))

	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister did not panic on a duplicate")
		}
	}()
	r.MustRegister(stubRecipe("once", GroupFilters))
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(stubRecipe(name, GroupEffects)); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	if err := r.Register(stubRecipe("d", GroupFilters)); err != nil {
		t.Fatalf("Register(d): %v", err)
	}

	want := []string{"c", "a", "b", "d"}
	all := r.All()
	if len(all) != len(want) {
		t.Fatalf("All() returned %d recipes, want %d", len(all), len(want))
	}
	for i, rec := range all {
		if rec.Name != want[i] {
			t.Fatalf("All()[%d] = %q, want %q", i, rec.Name, want[i])
		}
	}

	groups := r.Groups()
	if len(groups) != 2 || groups[0] != GroupEffects || groups[1] != GroupFilters {
		t.Fatalf("Groups() = %v, want [effects filters]", groups)
	}

	if got := len(r.ByGroup(GroupEffects)); got != 3 {
		t.Fatalf("ByGroup(effects) returned %d recipes, want 3", got)
	}
	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}
}
