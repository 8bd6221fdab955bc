package middleware

import (
	"net/http"
	"path"
	"strings"
)

// AddSlash redirects directory-style paths to their trailing-slash form.
// Paths that name a file (with an extension) are served as-is.
func AddSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if strings.HasSuffix(p, "/") || path.Ext(p) != "" {
				next.ServeHTTP(w, r)
				return
			}
			redirect(w, r, p+"/")
		})
	}
}

// TrimSlash redirects paths with a trailing slash to the bare form.
// The root path is left alone.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if p == "/" || !strings.HasSuffix(p, "/") {
				next.ServeHTTP(w, r)
				return
			}
			redirect(w, r, strings.TrimRight(p, "/"))
		})
	}
}

// redirect keeps the query string. Requests that carry a body get a 308
// so clients replay the upload against the canonical path.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if target == "" {
		target = "/"
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	status := http.StatusMovedPermanently
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		status = http.StatusPermanentRedirect
	}
	http.Redirect(w, r, target, status)
}
