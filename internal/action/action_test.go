package action

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type testItem struct {
	Name      string
	Protected bool
}

func testContext() *Context {
	return &Context{State: NewState()}
}

func TestProjectionOfferedOnlyWhenConditionAndVisiblePass(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Button is non-nil exactly when Condition and Visible both pass", prop.ForAll(
		func(cond, vis bool) bool {
			def := Define(Params[testItem]{
				Title:     "Act",
				Condition: func(testItem, *Context) bool { return cond },
				Visible:   func(testItem, *Context) bool { return vis },
				OnClick:   func(context.Context, testItem, *Context) error { return nil },
			})

			button := def.Button(testItem{}, testContext())
			dropdown := def.DropdownItem(testItem{}, testContext())

			offered := cond && vis
			return (button != nil) == offered && (dropdown != nil) == offered
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestDefaultsOfferEnabledControl(t *testing.T) {
	def := Define(Params[testItem]{
		Title:   "Act",
		OnClick: func(context.Context, testItem, *Context) error { return nil },
	})

	control := def.Button(testItem{}, testContext())
	if control == nil {
		t.Fatal("expected control with default predicates")
	}
	if control.Disabled {
		t.Error("expected control to be enabled by default")
	}
	if control.Variant != VariantPrimary {
		t.Errorf("expected primary variant by default, got %q", control.Variant)
	}
	if control.Kind != KindButton {
		t.Errorf("expected button kind, got %q", control.Kind)
	}
}

func TestDisabledControlIsInert(t *testing.T) {
	invoked := 0
	def := Define(Params[testItem]{
		Title: "Delete",
		Disabled: func(item testItem, _ *Context) string {
			if item.Protected {
				return "Protected items cannot be deleted."
			}
			return ""
		},
		OnClick: func(context.Context, testItem, *Context) error {
			invoked++
			return nil
		},
	})

	control := def.Button(testItem{Protected: true}, testContext())
	if control == nil {
		t.Fatal("expected control to be offered")
	}
	if !control.Disabled {
		t.Fatal("expected control to be disabled")
	}
	if control.DisabledReason != "Protected items cannot be deleted." {
		t.Errorf("unexpected disabled reason %q", control.DisabledReason)
	}

	if err := control.Invoke(context.Background()); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if invoked != 0 {
		t.Errorf("disabled control ran OnClick %d times", invoked)
	}
}

func TestEnabledControlInvokesOnClickExactlyOnce(t *testing.T) {
	invoked := 0
	var gotItem testItem
	def := Define(Params[testItem]{
		Title: "Act",
		OnClick: func(_ context.Context, item testItem, _ *Context) error {
			invoked++
			gotItem = item
			return nil
		},
	})

	control := def.Button(testItem{Name: "demo"}, testContext())
	if err := control.Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if invoked != 1 {
		t.Fatalf("expected exactly one OnClick call, got %d", invoked)
	}
	if gotItem.Name != "demo" {
		t.Errorf("OnClick saw item %q, want %q", gotItem.Name, "demo")
	}
}

func TestOnClickErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	def := Define(Params[testItem]{
		Title:   "Act",
		OnClick: func(context.Context, testItem, *Context) error { return boom },
	})

	control := def.Button(testItem{}, testContext())
	if err := control.Invoke(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected OnClick error to propagate, got %v", err)
	}
}

func TestModalNilWhenClosed(t *testing.T) {
	def := Define(Params[testItem]{
		Title:   "Act",
		OnClick: func(context.Context, testItem, *Context) error { return nil },
		Modal: func(_ context.Context, ctx *Context) *Modal {
			item, _ := ctx.State.Get("open").(*testItem)
			if item == nil {
				return nil
			}
			return NewModal("m", "Confirm?", "", "OK",
				func(context.Context) error { return nil },
				func() { ctx.State.Delete("open") })
		},
	})

	ctx := testContext()
	if def.Modal(context.Background(), ctx) != nil {
		t.Error("expected nil modal while closed")
	}

	ctx.State.Set("open", &testItem{})
	if def.Modal(context.Background(), ctx) == nil {
		t.Error("expected modal once state opened")
	}
}
