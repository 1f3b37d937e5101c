package ports

import "errors"

// ErrTransient marks a storage failure worth retrying (lock timeout,
// transaction conflict). Adapters wrap such errors; the service retries a
// bounded number of times and then surfaces the failure to the caller.
var ErrTransient = errors.New("transient storage error")
