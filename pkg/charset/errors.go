package charset

import "errors"

// ErrLegacyUnavailable is returned when a legacy operation runs without a codec
var ErrLegacyUnavailable = errors.New("legacy codec is not available")
