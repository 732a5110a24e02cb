// Package walk is the public face of the jswt directory walker.
//
// The walker visits a tree depth first, each directory before its entries,
// and never follows symbolic links. The visitor decides how to go on:
//
//	err := walk.Walk("./src", func(v walk.Visit) walk.Result {
//		node, ok := v.Node()
//		if !ok {
//			// the path could not be lstat'd
//			return walk.Skip()
//		}
//		if node.IsDir() && node.Name == "node_modules" {
//			return walk.Skip()
//		}
//		fmt.Println(v.Path())
//		return walk.Continue()
//	})
//
// A directory that cannot be listed is visited a second time with
// StateListingError, and then treated as empty. Returning Abort stops the
// walk, and Walk returns the error given to Abort unchanged. Abort(ErrSkipDir)
// behaves like Skip.
//
// Middlewares add behaviour around a visitor:
//
//	var stats walk.Stats
//	fn := walk.Chain(visit, walk.LoggingMiddleware(logger), walk.StatsMiddleware(&stats))
//
// Any afero filesystem can be walked through NewAferoFS:
//
//	opts := walk.Options{FS: walk.NewAferoFS(afero.NewMemMapFs())}
//	err := walk.WalkWithOptions("/", visit, opts)
package walk
