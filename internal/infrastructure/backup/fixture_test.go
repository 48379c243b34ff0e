package backup

import "github.com/jhoicas/inventarios-api/pkg/config"

func configFixture() config.DBConfig {
	return config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "inventarios",
		SSLMode:  "disable",
	}
}
