package sgtype

import "testing"

func TestCreateTypeAndLookup(t *testing.T) {
	base := CreateType(BadType(), "TestBase")
	if base.IsBad() {
		t.Fatal("created type should not be bad")
	}
	if base.Name() != "TestBase" {
		t.Errorf("expected name TestBase, got %q", base.Name())
	}
	if FromName("TestBase") != base {
		t.Error("FromName should return the registered type")
	}
	if !FromName("no-such-type").IsBad() {
		t.Error("unknown name should resolve to the bad type")
	}
}

func TestCreateTypeIdempotent(t *testing.T) {
	a := CreateType(BadType(), "TestIdempotent")
	b := CreateType(BadType(), "TestIdempotent")
	if a != b {
		t.Error("re-registration with the same parent should return the same id")
	}
}

func TestCreateTypeParentConflict(t *testing.T) {
	p1 := CreateType(BadType(), "TestConflictParent1")
	p2 := CreateType(BadType(), "TestConflictParent2")
	CreateType(p1, "TestConflictChild")

	defer func() {
		if recover() == nil {
			t.Error("redefinition with a different parent should panic")
		}
	}()
	CreateType(p2, "TestConflictChild")
}

func TestIsDerivedFrom(t *testing.T) {
	grand := CreateType(BadType(), "TestDerivedGrand")
	parent := CreateType(grand, "TestDerivedParent")
	child := CreateType(parent, "TestDerivedChild")
	other := CreateType(BadType(), "TestDerivedOther")

	cases := []struct {
		name string
		a, b TypeId
		want bool
	}{
		{"reflexive", child, child, true},
		{"direct parent", child, parent, true},
		{"transitive", child, grand, true},
		{"reversed", grand, child, false},
		{"unrelated", child, other, false},
		{"bad reflexive", BadType(), BadType(), true},
		{"bad not derived", BadType(), grand, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.IsDerivedFrom(c.b); got != c.want {
				t.Errorf("%s.IsDerivedFrom(%s) = %v, want %v", c.a.Name(), c.b.Name(), got, c.want)
			}
		})
	}
}

func TestBadTypeIsItsOwnParent(t *testing.T) {
	if BadType().Parent() != BadType() {
		t.Error("the bad type should be its own parent")
	}
}

func TestFactory(t *testing.T) {
	plain := CreateType(BadType(), "TestFactoryPlain")
	if plain.CanCreate() {
		t.Error("type without factory should not be creatable")
	}
	if plain.Create() != nil {
		t.Error("Create on a factoryless type should return nil")
	}

	made := CreateTypeWithFactory(BadType(), "TestFactoryMade", func() any { return 42 })
	if !made.CanCreate() {
		t.Error("type with factory should be creatable")
	}
	if v, ok := made.Create().(int); !ok || v != 42 {
		t.Errorf("Create should invoke the factory, got %v", made.Create())
	}
}
