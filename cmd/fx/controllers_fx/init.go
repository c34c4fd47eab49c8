package controllers_fx

import (
	"go.uber.org/fx"

	"localexplorer/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlacesController))
