// Package process configures external commands so they can be torn down
// together with their children.
package process

import "time"

// waitDelay bounds how long Wait keeps draining pipes after the process was
// killed, in case a grandchild still holds them open.
const waitDelay = 5 * time.Second
