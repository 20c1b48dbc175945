package checkout

import (
	"context"
	"testing"
)

func validForm() Form {
	return Form{
		Email:    "buyer@example.com",
		Phone:    "+8801711111111",
		Name:     "Test Buyer",
		Country:  "Bangladesh",
		City:     "Dhaka",
		Address:  "12 Road, Block A",
		Postcode: "1207",
	}
}

func TestValidateOK(t *testing.T) {
	res := validForm().Validate()
	if !res.OK {
		t.Fatalf("expected ok, got errors %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
}

func TestValidateMissingFields(t *testing.T) {
	res := Form{}.Validate()
	if res.OK {
		t.Fatalf("expected validation failure")
	}
	for _, field := range []string{"name", "email", "phone", "country", "city", "address"} {
		if _, ok := res.Errors[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, res.Errors)
		}
	}
	if _, ok := res.Errors["postcode"]; ok {
		t.Fatalf("postcode is optional, got %v", res.Errors)
	}
}

func TestValidateBadEmail(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"
	res := f.Validate()
	if res.OK {
		t.Fatalf("expected failure")
	}
	if res.Errors["email"] != "email is invalid" {
		t.Fatalf("expected invalid email message, got %q", res.Errors["email"])
	}
}

func TestValidateWhitespaceOnly(t *testing.T) {
	f := validForm()
	f.Name = "   "
	res := f.Validate()
	if res.OK || res.Errors["name"] != "name is required" {
		t.Fatalf("expected name required, got %v", res.Errors)
	}
}

func TestCustomerDetailsTrims(t *testing.T) {
	f := validForm()
	f.Name = "  Test Buyer  "
	d := f.CustomerDetails()
	if d.Name != "Test Buyer" {
		t.Fatalf("expected trimmed name, got %q", d.Name)
	}
}

func TestMemoryDraftsRoundTrip(t *testing.T) {
	drafts := NewMemoryDrafts()

	loaded, err := drafts.LoadDraft(context.Background(), "sess")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected no draft for fresh session")
	}

	if err := drafts.SaveDraft(context.Background(), "sess", validForm()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err = drafts.LoadDraft(context.Background(), "sess")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded == nil || loaded.Email != "buyer@example.com" {
		t.Fatalf("expected saved draft back, got %+v", loaded)
	}
}
