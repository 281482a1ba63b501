package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"maintenance-backend/config"
	apiv1 "maintenance-backend/controllers/v1"
	"maintenance-backend/controllers/v1/dict"
	"maintenance-backend/fiberlog"
	"maintenance-backend/initializers"
	"maintenance-backend/lib/ws"
	"maintenance-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // limit of 100MB, evidence videos
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	// json endpoints stay small; file uploads keep the fiber body limit
	apiV1.Use(middleware.WithBodyLimit(1024 * 1024))

	//requests
	requests := fiber.New()
	apiV1.Mount("/requests", requests)
	requests.Use(middleware.AuthorizationRequired())
	apiv1.InitRequestApiRouters(requests)
	apiv1.InitRequestFileApiRouters(requests)
	apiv1.InitExecutionApiRouters(requests)
	apiv1.InitMaterialsApiRouters(requests)

	//files
	files := fiber.New()
	apiV1.Mount("/files", files)
	files.Use(middleware.AuthorizationRequired())
	apiv1.InitFileApiRouters(files)

	//support
	support := fiber.New()
	apiV1.Mount("/support", support)
	support.Use(middleware.AuthorizationRequired())
	support.Use(middleware.AdminRole())
	apiv1.InitSupportApiRouters(support)

	//technicians
	technicians := fiber.New()
	apiV1.Mount("/technicians", technicians)
	technicians.Use(middleware.AuthorizationRequired())
	apiv1.InitTechnicianApiRouters(technicians)

	//dict
	dicts := fiber.New()
	apiV1.Mount("/dict", dicts)
	dicts.Use(middleware.AuthorizationRequired())
	dict.InitRejectReasonDictApiRouters(dicts)
	dict.InitDeviceDictApiRouters(dicts)
	dict.InitIssueTypeDictApiRouters(dicts)

	//ws pushes
	wsApp := fiber.New()
	app.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	app.Hooks().OnShutdown()

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
