// Package platform contains OS integration helpers: filesystem paths,
// opening folders in the system file manager, and external tool detection.
package platform
