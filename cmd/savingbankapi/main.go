package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/iov-one/savingbank/cmd/savingbankapi/cache"
	"github.com/iov-one/savingbank/cmd/savingbankapi/client"
	"github.com/iov-one/savingbank/cmd/savingbankapi/handlers"
	"github.com/iov-one/savingbank/errors"
)

type configuration struct {
	HTTP       string
	Tendermint string
	// Redis is the address of the response cache. Empty keeps the cache in
	// memory.
	Redis string
}

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LUTC | log.Lshortfile)

	conf := configuration{
		HTTP:       env("HTTP", ":8000"),
		Tendermint: env("TENDERMINT", "http://localhost:26657"),
		Redis:      env("REDIS", ""),
	}

	if err := run(conf); err != nil {
		log.Fatal(err)
	}
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func run(conf configuration) error {
	var c cache.Cache
	if conf.Redis == "" {
		mem, err := cache.NewMemoryCache(cache.DefaultMemoryEntries)
		if err != nil {
			return err
		}
		c = mem
	} else {
		rc := cache.NewRedisCache(conf.Redis)
		defer rc.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			return errors.Wrapf(err, "redis %s", conf.Redis)
		}
		c = rc
	}

	sb := client.NewHTTPClient(conf.Tendermint)
	rt := handlers.Router(sb, c)

	log.Printf("serving on %s, node %s", conf.HTTP, conf.Tendermint)
	if err := http.ListenAndServe(conf.HTTP, rt); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}
