package routesfile

import "errors"

var (
	ErrUnknownHandler  = errors.New("routesfile: unknown handler")
	ErrInvalidManifest = errors.New("routesfile: invalid manifest")
)
