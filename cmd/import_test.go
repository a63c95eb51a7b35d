package cmd

import "testing"

func TestResolveSubmitMode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		mode          string
		configDefault bool
		want          bool
		wantErr       bool
	}{
		{name: "auto follows config on", mode: "auto", configDefault: true, want: true},
		{name: "auto follows config off", mode: "auto", configDefault: false, want: false},
		{name: "empty follows config", mode: "", configDefault: true, want: true},
		{name: "on overrides config", mode: "on", configDefault: false, want: true},
		{name: "off overrides config", mode: "off", configDefault: true, want: false},
		{name: "yes alias", mode: "YES", configDefault: false, want: true},
		{name: "invalid mode", mode: "maybe", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveSubmitMode(tc.mode, tc.configDefault)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
