package parser

import (
	"testing"
)

func TestClassifier_FailedLoginWithAddress(t *testing.T) {
	c := NewClassifier()

	cl := c.Classify("Failed password for user from 10.0.0.5 port 22")

	if !cl.FailedLogin {
		t.Fatal("Expected failed login, got none")
	}
	if cl.Address != "10.0.0.5" {
		t.Errorf("Expected address '10.0.0.5', got '%s'", cl.Address)
	}
	if cl.Error || cl.Critical {
		t.Errorf("Expected no other categories, got %+v", cl)
	}
}

func TestClassifier_FailedLoginWithoutAddress(t *testing.T) {
	c := NewClassifier()

	cl := c.Classify("Failed password attempt, no IP here")

	if !cl.FailedLogin {
		t.Fatal("Expected failed login, got none")
	}
	if cl.Address != "" {
		t.Errorf("Expected no address, got '%s'", cl.Address)
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		line string
		want Classification
	}{
		{"FAILED PASSWORD for root from 1.2.3.4", Classification{FailedLogin: true, Address: "1.2.3.4"}},
		{"disk Error on /dev/sda", Classification{Error: true}},
		{"CRITICAL: temperature", Classification{Critical: true}},
		{"critical error in kernel", Classification{Error: true, Critical: true}},
		{"failed password ... ERROR ... Critical from 8.8.8.8", Classification{FailedLogin: true, Error: true, Critical: true, Address: "8.8.8.8"}},
		{"Accepted password for root from 10.0.0.5", Classification{}},
		{"errors everywhere", Classification{Error: true}},
	}

	for _, tc := range cases {
		got := c.Classify(tc.line)
		if got != tc.want {
			t.Errorf("Classify(%q): expected %+v, got %+v", tc.line, tc.want, got)
		}
	}
}

func TestClassifier_OnlyASCIICaseFolding(t *testing.T) {
	c := NewClassifier()

	cases := map[string]Classification{
		"CRİTİCAL disk":                   {},
		"FAİLED PASSWORD from 1.2.3.4":    {},
		"ERROR ünïcode payload":           {Error: true},
		"Crit\u0130cal and CRITICAL both": {Critical: true},
	}

	for line, want := range cases {
		if got := c.Classify(line); got != want {
			t.Errorf("Classify(%q): expected %+v, got %+v", line, want, got)
		}
	}
}

func TestClassifier_AddressOnlyForFailedLogins(t *testing.T) {
	c := NewClassifier()

	cl := c.Classify("error connecting to 10.1.1.1")
	if cl.Address != "" {
		t.Errorf("Expected no address for non-login line, got '%s'", cl.Address)
	}
}

func TestExtractAddress_Boundaries(t *testing.T) {
	cases := map[string]string{
		"from 192.168.1.100 port 52944": "192.168.1.100",
		"from 999.999.999.999 port 1":   "999.999.999.999", // no range check
		"first 1.1.1.1 then 2.2.2.2":    "1.1.1.1",
		"version 1.2.3 only":            "",
		"id 1234.1.1.1":                 "",
		"addr=10.0.0.1,":                "10.0.0.1",
		"no address at all":             "",
	}

	for line, want := range cases {
		if got := ExtractAddress(line); got != want {
			t.Errorf("ExtractAddress(%q): expected '%s', got '%s'", line, want, got)
		}
	}
}
