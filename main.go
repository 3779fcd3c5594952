// Package main bookstore API.
//
// Role-based bookstore: catalog CRUD, registration/login, and a two-stage
// order workflow (users place pending orders, an admin checks them out).
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/meghana367/bookstoreapp/app/echoServer"
	authctrl "github.com/meghana367/bookstoreapp/app/echoServer/controller/auth"
	bookctrl "github.com/meghana367/bookstoreapp/app/echoServer/controller/book"
	orderctrl "github.com/meghana367/bookstoreapp/app/echoServer/controller/order"
	userctrl "github.com/meghana367/bookstoreapp/app/echoServer/controller/user"
	"github.com/meghana367/bookstoreapp/app/echoServer/validation"
	"github.com/meghana367/bookstoreapp/config"
	bookrepo "github.com/meghana367/bookstoreapp/repository/book"
	orderrepo "github.com/meghana367/bookstoreapp/repository/order"
	userrepo "github.com/meghana367/bookstoreapp/repository/user"
	authsvc "github.com/meghana367/bookstoreapp/service/auth"
	booksvc "github.com/meghana367/bookstoreapp/service/book"
	ordersvc "github.com/meghana367/bookstoreapp/service/order"
	"github.com/meghana367/bookstoreapp/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: embedded sqlite file
	db, err := database.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error("db open failed", "err", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	or := orderrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br, cfg.LowStockThreshold)
	osvc := ordersvc.New(db, or, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: osvc, V: v, Log: log}
	userC := &userctrl.Controller{Svc: as, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Book:      bookC,
		Order:     orderC,
		User:      userC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "db", cfg.DatabasePath)

	e.Logger.Fatal(e.Start(":" + port))
}
