// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package payload supplies the outgoing messages of each side of the exchange.
package payload
