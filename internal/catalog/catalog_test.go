// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "testing"

func TestEntriesUniqueKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range Entries() {
		if e.Key == "" {
			t.Error("entry with empty key")
		}
		if seen[e.Key] {
			t.Errorf("duplicate key %q", e.Key)
		}
		seen[e.Key] = true
		if e.Presence == nil {
			t.Errorf("%s: nil presence pattern", e.Key)
		}
		if e.DisplayName == "" {
			t.Errorf("%s: empty display name", e.Key)
		}
	}
	if len(seen) < 12 {
		t.Errorf("catalog has %d entries, want at least 12", len(seen))
	}
}

func TestLookup(t *testing.T) {
	if e := Lookup("r"); e == nil || e.DisplayName != "R" {
		t.Errorf("Lookup(\"r\") = %+v, want R entry", e)
	}
	if e := Lookup("nope"); e != nil {
		t.Errorf("Lookup(\"nope\") = %+v, want nil", e)
	}
}

// Fixture sentences exercising each entry's presence pattern in both
// directions.
func TestPresenceFixtures(t *testing.T) {
	tests := []struct {
		key  string
		text string
		want bool
	}{
		{"r", "analyses were performed using R version 4.1.2", true},
		{"r", "data were analyzed with the R statistical environment", true},
		{"r", "figures were produced in RStudio", true},
		{"r", "lions roar at dawn", false},
		{"r", "group R received treatment", false},

		{"spss", "SPSS Statistics version 26.0 was used", true},
		{"spss", "we used PASW Statistics 18", true},
		{"spss", "no statistics software was named", false},

		{"sas", "SAS Institute software, version 9.4", true},
		{"sas", "computed with SAS 9.4", true},
		{"sas", "PROC MIXED in SAS/STAT was applied", true},
		{"sas", "patients with severe SAS were excluded", false},

		{"stata", "Stata version 16 (StataCorp)", true},
		{"stata", "regression was run in stata", true},
		{"stata", "no mention here", false},

		{"prism", "plotted with GraphPad Prism 9", true},
		{"prism", "Prism 8.0 was used for graphs", true},
		{"prism", "light passed through a glass prism", false},

		{"python", "scripts were written in Python 3.9", true},
		{"python", "a python snake was observed in the field", false},
		{"python", "the Python programming language was used", false},
		{"python", "Python scripts computed the statistics", true},

		{"pylibs", "we used NumPy and SciPy for analysis", true},
		{"pylibs", "plots were made with matplotlib", true},
		{"pylibs", "models were fit with scikit-learn", true},
		{"pylibs", "no libraries were mentioned", false},

		{"matlab", "signal processing in MATLAB R2021a", true},
		{"matlab", "code is available from MathWorks", true},
		{"matlab", "nothing numerical here", false},

		{"minitab", "quality control charts used Minitab 19", true},
		{"minitab", "charts were hand drawn", false},

		{"jmp", "JMP Pro 16 was used for the DOE", true},
		{"jmp", "athletes jumped higher", false},

		{"jamovi", "analyses were replicated in jamovi", true},
		{"jamovi", "nothing to see", false},

		{"jasp", "Bayesian analyses used JASP 0.16", true},
		{"jasp", "no Bayesian software appeared", false},

		{"revman", "meta-analysis was conducted in RevMan 5.4", true},
		{"revman", "we used Review Manager version 5.3", true},
		{"revman", "the review manager approved the budget", true}, // alias is deliberately broad
		{"revman", "no cochrane tooling named", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.text, func(t *testing.T) {
			e := Lookup(tt.key)
			if e == nil {
				t.Fatalf("no entry %q", tt.key)
			}
			got := e.Presence.MatchString(tt.text)
			if tt.key == "python" {
				// The python entry's exclusion is evaluated by the
				// detector, not the presence pattern; emulate it here.
				got = false
				for _, span := range e.Presence.FindAllStringIndex(tt.text, -1) {
					if !e.ExcludeFollowing.MatchString(tt.text[span[1]:]) {
						got = true
						break
					}
				}
			}
			if got != tt.want {
				t.Errorf("presence(%q) on %q = %v, want %v", tt.key, tt.text, got, tt.want)
			}
		})
	}
}

func TestVersionFixtures(t *testing.T) {
	tests := []struct {
		key  string
		text string
		want string
	}{
		{"r", "using R version 4.1.2 for all analyses", "4.1.2"},
		{"r", "using R 3.6.1 and packages", "3.6.1"},
		{"spss", "SPSS Statistics version 26.0", "26.0"},
		{"spss", "IBM SPSS 25", "25"},
		{"sas", "SAS version 9.4 (SAS Institute)", "9.4"},
		{"stata", "Stata SE 17.0", "17.0"},
		{"stata", "Stata version 16", "16"},
		{"prism", "GraphPad Prism 9.3.1", "9.3.1"},
		{"python", "Python 3.9.7 with standard libraries", "3.9.7"},
		{"matlab", "MATLAB R2021a", "2021a"},
		{"matlab", "MATLAB version 9.10", "9.10"},
		{"minitab", "Minitab 19", "19"},
		{"jmp", "JMP Pro 16.1", "16.1"},
		{"jamovi", "jamovi version 2.2", "2.2"},
		{"jasp", "JASP 0.16.3", "0.16.3"},
		{"revman", "RevMan 5.4", "5.4"},
		{"revman", "Review Manager version 5.3", "5.3"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.want, func(t *testing.T) {
			e := Lookup(tt.key)
			if e == nil {
				t.Fatalf("no entry %q", tt.key)
			}
			if e.Version == nil {
				t.Fatalf("%s: no version pattern", tt.key)
			}
			m := e.Version.FindStringSubmatch(tt.text)
			if m == nil {
				t.Fatalf("version pattern did not match %q", tt.text)
			}
			if m[1] != tt.want {
				t.Errorf("version = %q, want %q", m[1], tt.want)
			}
		})
	}
}

func TestVersionAbsentWithoutNumber(t *testing.T) {
	texts := map[string]string{
		"stata":  "all models were fit in Stata as described",
		"python": "custom Python scripts are available on request",
		"jasp":   "Bayesian factors were computed in JASP",
	}
	for key, text := range texts {
		e := Lookup(key)
		if e.Version.MatchString(text) {
			t.Errorf("%s: version pattern matched versionless text %q", key, text)
		}
	}
}
