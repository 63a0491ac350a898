package filmsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/nathants/filmsync/film"
	"github.com/nathants/filmsync/lib"
	"gopkg.in/yaml.v3"
)

func init() {
	lib.Commands["film-sync"] = filmSync
	lib.Args["film-sync"] = filmSyncArgs{}
}

type filmSyncArgs struct {
	film.Config
	Yaml bool `arg:"--yaml" help:"print the response as yaml"`
}

func (filmSyncArgs) Description() string {
	return `
copy every film from aurora postgres into dynamodb and print the run response

FILM_* variables are also read from a .env file in the working directory.

>> filmsync film-sync
>> filmsync film-sync --table films_staging --no-probe
`
}

func filmSync() {
	err := loadEnvFile(".env")
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	args := filmSyncArgs{Config: film.DefaultConfig()}
	arg.MustParse(&args)
	ctx := context.Background()
	p := &film.Pipeline{
		Config:   args.Config,
		Services: film.NewAWSServices(args.Config),
	}
	resp, err := p.Run(ctx)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	err = printResponse(resp, args.Yaml)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func printResponse(resp *film.Response, asYaml bool) error {
	data, err := resp.JSON()
	if err != nil {
		return err
	}
	switch {
	case asYaml:
		var val any
		err = json.Unmarshal(data, &val)
		if err != nil {
			return err
		}
		data, err = yaml.Marshal(val)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	case isatty.IsTerminal(os.Stdout.Fd()):
		var val any
		err = json.Unmarshal(data, &val)
		if err != nil {
			return err
		}
		data, err = json.MarshalIndent(val, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		fmt.Println(string(data))
	}
	return nil
}
