package service

import "errors"

var ErrWorkspaceNotFound = errors.New("workspace not found")
