package filmsync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/nathants/filmsync/film"
	"github.com/nathants/filmsync/lib"
)

func init() {
	lib.Commands["film-probe"] = filmProbe
	lib.Args["film-probe"] = filmProbeArgs{}
}

type filmProbeArgs struct {
	Host    string        `arg:"positional" help:"defaults to the endpoint in ssm"`
	Port    int           `arg:"-p,--port" default:"5432"`
	Timeout time.Duration `arg:"-t,--timeout" default:"3s"`
}

func (filmProbeArgs) Description() string {
	return `
resolve the database endpoint and check it accepts tcp connections

>> filmsync film-probe
>> filmsync film-probe db.example.internal --port 5432
`
}

func filmProbe() {
	var args filmProbeArgs
	arg.MustParse(&args)
	ctx := context.Background()
	host := args.Host
	if host == "" {
		var err error
		host, err = lib.SSMGetParameter(ctx, film.EndpointParameter)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
	p := &film.NetProber{Port: args.Port, Timeout: args.Timeout}
	probe := p.Probe(ctx, host)
	data, err := json.Marshal(probe)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(string(data))
	if !probe.Reachable {
		os.Exit(1)
	}
}
