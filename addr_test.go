package alpinelib

import "testing"

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"127.0.0.1:7411", "127.0.0.1:7411", false},
		{"0.0.0.0:0", "0.0.0.0:0", false},
		{"192.168.1.40:6000", "192.168.1.40:6000", false},
		// Invalid cases
		{"", "", true},
		{"127.0.0.1", "", true},          // no port
		{"127.0.0.1:notaport", "", true}, // unknown service
	}

	for _, tt := range tests {
		got, err := resolveEndpoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveEndpoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Errorf("resolveEndpoint(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
