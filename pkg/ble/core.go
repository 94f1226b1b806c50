package ble

import (
	"context"

	"github.com/currantlabs/ble"
	"github.com/currantlabs/ble/linux"
	"github.com/pkg/errors"

	"github.com/pingtag/tag-sdk/pkg/util"
)

type coreMethods interface {
	SetDefaultDevice() error
	Connect(context.Context, ble.AdvFilter) (ble.Client, error)
	Dial(context.Context, ble.Addr) (ble.Client, error)
	Scan(context.Context, bool, ble.AdvHandler, ble.AdvFilter) error
}

type realCoreMethods struct{}

func (bc *realCoreMethods) Connect(ctx context.Context, f ble.AdvFilter) (ble.Client, error) {
	var client ble.Client
	err := util.CatchErrs(func() error {
		c, e := ble.Connect(ctx, f)
		client = c
		return e
	})
	return client, err
}

func (bc *realCoreMethods) Dial(ctx context.Context, addr ble.Addr) (ble.Client, error) {
	var client ble.Client
	err := util.CatchErrs(func() error {
		c, e := ble.Dial(ctx, addr)
		client = c
		return e
	})
	return client, err
}

func (bc *realCoreMethods) Scan(ctx context.Context, allowDup bool, h ble.AdvHandler, f ble.AdvFilter) error {
	return util.CatchErrs(func() error {
		return ble.Scan(ctx, allowDup, h, f)
	})
}

func (bc *realCoreMethods) SetDefaultDevice() error {
	device, err := linux.NewDevice()
	if err != nil {
		return errors.Wrap(err, "NewDevice issue: ")
	}
	ble.SetDefaultDevice(device)
	return nil
}
