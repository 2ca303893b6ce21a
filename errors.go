package crafty

import (
	"errors"

	"github.com/aweris/crafty/internal/catalog"
	"github.com/aweris/crafty/internal/compression"
	"github.com/aweris/crafty/internal/ledger"
	"github.com/aweris/crafty/internal/pacman"
	"github.com/aweris/crafty/internal/remote"
)

var (
	ErrNotFound   = errors.New("crafty: package not found")
	ErrNotManaged = errors.New("crafty: package not installed via crafty")

	ErrNetwork        = remote.ErrNetwork
	ErrParse          = catalog.ErrParse
	ErrInvalidArchive = compression.ErrInvalidArchive
	ErrSubprocess     = pacman.ErrSubprocess
	ErrPersistence    = ledger.ErrPersistence
)
