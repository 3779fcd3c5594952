package config

type App struct {
	Port              string `env:"APP_PORT" default:"8080"`
	DatabasePath      string `env:"DATABASE_PATH" default:"bookstore.db"`
	JWTSecret         string `env:"JWT_SECRET" default:"local_dev_secret"`
	AdminUsername     string `env:"ADMIN_USERNAME" default:"library"`
	AdminPassword     string `env:"ADMIN_PASSWORD" default:"1234"`
	LowStockThreshold int64  `env:"LOW_STOCK_THRESHOLD" default:"5"`
	Env               string `env:"APP_ENV" default:"dev"`
}
