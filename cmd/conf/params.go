////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package conf

import (
	"net"
	"runtime"

	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

// Default minimum runtimes in seconds for the timed pipeline stages.
const (
	defaultMinRuntime       = 3.0
	defaultSerialMinRuntime = 1.0
)

// This object holds the benchmark's configuration.
// It should be constructed using a viper object
type Params struct {
	// Workers is the parallel pipeline's group size.
	Workers int

	// MinRuntime and SerialMinRuntime floor the timed stages.
	MinRuntime       float64
	SerialMinRuntime float64

	// OutputDir is where ciphertext, layout data, and recovered
	// plaintext are placed.
	OutputDir string

	// LogPath receives the log output when set.
	LogPath string

	Database Database

	DevMode bool
}

// NewParams gets elements of the viper object
// and updates the params object. It returns params
// unless it fails to parse in which it case returns error
func NewParams(vip *viper.Viper) (*Params, error) {

	params := Params{}

	params.Workers = vip.GetInt("workers")
	if params.Workers < 1 {
		params.Workers = runtime.NumCPU()
	}

	params.MinRuntime = vip.GetFloat64("minRuntime")
	if params.MinRuntime <= 0 {
		params.MinRuntime = defaultMinRuntime
	}

	params.SerialMinRuntime = vip.GetFloat64("serialMinRuntime")
	if params.SerialMinRuntime <= 0 {
		params.SerialMinRuntime = defaultSerialMinRuntime
	}

	params.OutputDir = vip.GetString("outputDir")
	if params.OutputDir == "" {
		params.OutputDir = "output"
	}

	params.LogPath = vip.GetString("paths.log")

	// Obtain database connection info
	rawAddr := vip.GetString("database.address")
	var addr, port string
	if rawAddr != "" {
		var err error
		addr, port, err = net.SplitHostPort(rawAddr)
		if err != nil {
			jww.FATAL.Panicf("Unable to get database port from %s: %+v",
				rawAddr, err)
		}
	}
	params.Database.Name = vip.GetString("database.name")
	params.Database.Username = vip.GetString("database.username")
	params.Database.Password = vip.GetString("database.password")
	params.Database.Address = addr
	params.Database.Port = port

	params.DevMode = vip.GetBool("devMode")

	return &params, nil
}
