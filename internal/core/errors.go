package core

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("cnodectl")

	IllegalArgument = ErrNamespace.NewType("illegal_argument")
	ConfigNotFound  = ErrNamespace.NewType("config_not_found", errorx.NotFound())
)
