package snake

import "testing"

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{"y": true, "Yes": true, "1": true, "n": false, "No": false, "false": false} {
		got, err := ParseBool(in)
		if err != nil || got != want {
			t.Fatalf("ParseBool(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatal("expected error for maybe")
	}
}

func TestValidateYear(t *testing.T) {
	for _, ok := range []string{"", "2025", " 1999 ", "1"} {
		if err := validateYear(ok); err != nil {
			t.Fatalf("validateYear(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"abc", "0", "10000", "20x5"} {
		if err := validateYear(bad); err == nil {
			t.Fatalf("validateYear(%q) should fail", bad)
		}
	}
}

func TestMonthSearcher(t *testing.T) {
	if !monthSearcher("oct", 9) {
		t.Fatal("oct should match October")
	}
	if monthSearcher("oct", 0) {
		t.Fatal("oct should not match January")
	}
	if !monthSearcher("JU", 5) || !monthSearcher("ju", 6) {
		t.Fatal("ju should match June and July")
	}
}

func TestRequired(t *testing.T) {
	if required("  ") == nil {
		t.Fatal("blank should be rejected")
	}
	if required("Ada") != nil {
		t.Fatal("name should pass")
	}
}
