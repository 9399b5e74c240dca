package backend

import (
	"maps"
	"time"
)

// SDKVersion is reported in the td_version implicit field.
const SDKVersion = "tdtrack-go-1"

// withImplicitFields returns a copy of record with the backend's implicit
// fields added. Fields already present in record win.
func withImplicitFields(record Record, clientID string) Record {
	out := Record{
		"td_version": SDKVersion,
		"td_time":    time.Now().UTC().Unix(),
	}
	if clientID != "" {
		out["td_client_id"] = clientID
	}
	maps.Copy(out, record)
	return out
}
