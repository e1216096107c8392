// Package state shares backend health between the status poller and the UI.
//
// The poller is the only writer; the UI reads a Snapshot copy on every
// render tick:
//
//	poller goroutine              UI update loop
//	  client.Status()               store.Snapshot()
//	  store.Update()  ──(RWMutex)──>  header label
//
// A failed probe drops the previous status, so the header switches to
// "Unhealthy" right away and stays there until a probe succeeds. Reset puts
// the store back into its initial "Checking" state on a client reload.
package state
