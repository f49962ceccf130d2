package courses

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "json array", raw: `["A","B"]`, want: []string{"A", "B"}},
		{name: "comma separated", raw: "A,B", want: []string{"A", "B"}},
		{name: "comma separated with spaces", raw: " A , B ,C ", want: []string{"A", "B", "C"}},
		{name: "single value", raw: "Web Development", want: []string{"Web Development"}},
		{name: "empty string", raw: "", want: []string{}},
		{name: "whitespace only", raw: "   ", want: []string{}},
		{name: "quoted json array", raw: `"["A","B"]"`, want: []string{"A", "B"}},
		{name: "json scalar string", raw: `"Data Science"`, want: []string{"Data Science"}},
		{name: "json scalar with comma", raw: `"A,B"`, want: []string{"A", "B"}},
		{name: "json null", raw: "null", want: []string{}},
		{name: "json number wraps as singleton", raw: "42", want: []string{"42"}},
		{name: "array with blanks dropped", raw: `["A","","  ","B"]`, want: []string{"A", "B"}},
		{name: "trailing comma", raw: "A,B,", want: []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFromForm(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{name: "absent", values: nil, want: []string{}},
		{name: "repeated field", values: []string{"A", "B"}, want: []string{"A", "B"}},
		{name: "single json value", values: []string{`["A","B"]`}, want: []string{"A", "B"}},
		{name: "single plain value", values: []string{"A"}, want: []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromForm(tt.values); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromForm(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}
