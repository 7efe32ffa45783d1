package app

import (
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/modules/copyblob"
	"github.com/ms/opnet/modules/fill"
	"github.com/ms/opnet/modules/print"
	"github.com/ms/opnet/modules/sleep"
	"github.com/ms/opnet/modules/sum"
)

// coreModules is the definitive list of all operator modules that are
// compiled into the opnet binary.
var coreModules = []registry.Module{
	&copyblob.Module{},
	&fill.Module{},
	&print.Module{},
	&sleep.Module{},
	&sum.Module{},
}
