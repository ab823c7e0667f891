package models

// PermissionStatus is the durable record kept for a capability key.
// Once granted, the record never reverts to requested by this module.
type PermissionStatus string

const (
	// PermissionRequested means the user was already prompted once for the capability.
	PermissionRequested PermissionStatus = "requested"
	// PermissionGranted means the platform confirmed the capability grant.
	PermissionGranted PermissionStatus = "granted"
)
