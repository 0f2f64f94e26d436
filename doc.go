// Package xqueue consumes jobs from named Redis backlog lists with a fixed
// pool of worker goroutines.
//
// Every queue suffix S in the configured namespace N owns three keys:
//
//   - N.S.BACKLOG      list producers RPUSH JSON payloads onto
//   - N.S.C.FINISHED.  counter of completed jobs
//   - N.S.C.RPM.       counter of completions in a 60 second window
//
// A payload is a JSON object {"spider": "<job>", "args": {...}}. The job name
// is looked up in the registry supplied with WithJobs and run with args
// converted into the job input type. Failing jobs are logged and counted,
// never retried. A backend failure in any consumer terminates the process.
//
//	srv, err := xqueue.New(
//		xqueue.WithConfig(config),
//		xqueue.WithJobs(types.NewFunc("crawl", crawl)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = srv.Run(ctx)
package xqueue
