// Package app is the composition root of ragdesk.
//
// # Startup
//
//  1. Load config (file, .env, environment), apply the -api override
//  2. Open the rotating zap log file; the terminal belongs to the TUI
//  3. Build the ragapi client with its session cookie jar
//  4. Start the status Poller against a shared state.Store
//  5. Load theme preferences and run the UI until it exits
//
// # Data flow
//
//	Run()
//	  ├─> config.Load()
//	  ├─> logging.New()
//	  ├─> ragapi.NewClient()
//	  ├─> NewPoller().Start()   goroutine: Status() -> store.Update()
//	  └─> ui.Run()              blocks; reads store.Snapshot() on ticks,
//	                            calls poller.Kick() on reload
//
// # Status polling
//
// The poller probes /status immediately, then every status_poll seconds.
// Each consecutive failure doubles the wait, capped at 30 seconds, so an
// unreachable backend is not hammered. A Kick (client reload) probes at once
// and resets the timer.
//
// Cancelling the context passed to Run stops the poller and makes in-flight
// requests return context.Canceled, which is not logged.
package app
