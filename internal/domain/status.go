package domain

import "fmt"

// Status mirrors the status tokens Transmission reports for a torrent.
type Status string

const (
	StatusStopped      Status = "stopped"
	StatusCheckWait    Status = "check_wait"
	StatusChecking     Status = "check"
	StatusDownloadWait Status = "download_wait"
	StatusDownloading  Status = "downloading"
	StatusSeedWait     Status = "seed_wait"
	StatusSeeding      Status = "seeding"

	// StatusDownloadPending is part of the active set for compatibility with
	// daemons that report it, even though statusByCode never produces it.
	StatusDownloadPending Status = "download_pending"
)

var statusByCode = map[int64]Status{
	0: StatusStopped,
	1: StatusCheckWait,
	2: StatusChecking,
	3: StatusDownloadWait,
	4: StatusDownloading,
	5: StatusSeedWait,
	6: StatusSeeding,
}

// StatusFromCode maps Transmission's numeric status code to a Status.
// Unrecognized codes degrade to an "unknown:<code>" token rather than an
// error, so new daemon states pass through without breaking anything.
func StatusFromCode(code int64) Status {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return Status(fmt.Sprintf("unknown:%d", code))
}

var activeStatuses = map[Status]struct{}{
	StatusDownloading:     {},
	StatusSeeding:         {},
	StatusChecking:        {},
	StatusCheckWait:       {},
	StatusDownloadWait:    {},
	StatusSeedWait:        {},
	StatusDownloadPending: {},
}

// Active reports whether the status counts as an active download: anything
// transferring, queued or checking. Stopped and unknown states do not.
func (s Status) Active() bool {
	_, ok := activeStatuses[s]
	return ok
}
