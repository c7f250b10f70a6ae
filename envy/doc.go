// Package envy resolves a build tool's configuration from a shared ("common")
// fragment and an environment-specific fragment.
//
// A Resolver owns the effective Settings, normalizes the environment
// identifier, computes both fragment paths from the filename template,
// loads the fragments through a Loader and deep-merges their outputs, the
// environment fragment taking precedence over the common one.
//
// Usage:
//
//	r, err := envy.New(envy.Settings{Root: "/app"}, envy.WithAmbientEnv(os.Getenv("NODE_ENV")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg, err := r.Resolve("production")
package envy
