package nav

import "testing"

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path    string
		want    Route
		wantErr bool
	}{
		{"/", List(), false},
		{"", List(), false},
		{"/detail/abc", Detail("abc"), false},
		{"/detail/abc/", Detail("abc"), false},
		{"/detail/a%20b", Detail("a b"), false},
		{"/detail/", Route{}, true},
		{"/detail/a/b", Route{}, true},
		{"/settings", Route{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseRoute(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRoute(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRoute(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	for _, r := range []Route{List(), Detail("1"), Detail("5f1c-uuid"), Detail("with space")} {
		got, err := ParseRoute(r.Path())
		if err != nil || got != r {
			t.Errorf("ParseRoute(%q) = %+v, %v; want %+v", r.Path(), got, err, r)
		}
	}
}

func TestNavigate(t *testing.T) {
	msg := Navigate(Detail("x"))()
	nm, ok := msg.(NavigateMsg)
	if !ok || nm.To != Detail("x") {
		t.Errorf("Navigate() produced %#v", msg)
	}
}
