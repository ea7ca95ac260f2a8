package main

import (
	"github.com/corray333/order-management/internal/app"
	"github.com/corray333/order-management/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
