package repositories

import "testing"

func TestSortColumn(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{field: "id", want: "id"},
		{field: "firstName", want: "first_name"},
		{field: "lastName", want: "last_name"},
		{field: "email", want: "email"},
		{field: "age", want: "age"},
		{field: "createdAt", want: "created_at"},
		{field: "created_at", want: "created_at"},
		// Anything outside the allow-list falls back to id.
		{field: "password", want: "id"},
		{field: "id; DROP TABLE registrations", want: "id"},
		{field: "", want: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := SortColumn(tt.field); got != tt.want {
				t.Errorf("SortColumn(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestSortDirection(t *testing.T) {
	tests := []struct {
		order string
		want  string
	}{
		{order: "ASC", want: "ASC"},
		{order: "DESC", want: "DESC"},
		{order: "desc", want: "DESC"},
		{order: "descending", want: "ASC"},
		{order: "", want: "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			if got := SortDirection(tt.order); got != tt.want {
				t.Errorf("SortDirection(%q) = %q, want %q", tt.order, got, tt.want)
			}
		})
	}
}

func TestEncodeCourses(t *testing.T) {
	tests := []struct {
		name string
		list []string
		want string
	}{
		{name: "nil becomes empty array", list: nil, want: "[]"},
		{name: "empty", list: []string{}, want: "[]"},
		{name: "values", list: []string{"A", "B"}, want: `["A","B"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeCourses(tt.list); got != tt.want {
				t.Errorf("EncodeCourses(%v) = %q, want %q", tt.list, got, tt.want)
			}
		})
	}
}
