package internal

import "testing"

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        bool
	}{
		{"html content type", "text/html", `{"actually":"json"}`, true},
		{"html content type with charset", "text/html; charset=utf-8", "", true},
		{"xhtml content type", "application/xhtml+xml", "", true},
		{"doctype body", "", "<!DOCTYPE html><html></html>", true},
		{"html tag body", "application/octet-stream", "<html><body>502</body></html>", true},
		{"leading whitespace", "", "\n\t  <html>", true},
		{"title tag", "", "<title>Maintenance</title>", true},
		{"json body", "application/json", `{"success":true}`, false},
		{"empty", "", "", false},
		{"angle bracket but not html", "", "<xml version=\"1.0\"?>", false},
		{"html mentioned mid-body", "application/json", `{"note":"<html> is escaped"}`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksLikeHTML(tc.contentType, []byte(tc.body)); got != tc.want {
				t.Fatalf("LooksLikeHTML(%q, %q) = %v, want %v", tc.contentType, tc.body, got, tc.want)
			}
		})
	}
}
