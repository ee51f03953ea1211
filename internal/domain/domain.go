// Package domain re-exports the per-area model types under one import so
// repos and services can refer to them as types.X.
package domain

import (
	"github.com/prashantttzz/experimentlabs/internal/domain/chat"
	"github.com/prashantttzz/experimentlabs/internal/domain/learning"
	"github.com/prashantttzz/experimentlabs/internal/domain/user"
)

type (
	User = user.User

	Goal        = learning.Goal
	GoalStatus  = learning.GoalStatus
	Chunk       = learning.Chunk
	ChunkStatus = learning.ChunkStatus

	ChatMessage = chat.ChatMessage
	SenderRole  = chat.SenderRole
)

const (
	GoalInProgress = learning.GoalInProgress
	GoalCompleted  = learning.GoalCompleted

	ChunkLocked    = learning.ChunkLocked
	ChunkCurrent   = learning.ChunkCurrent
	ChunkCompleted = learning.ChunkCompleted

	SenderUser = chat.SenderUser
	SenderAI   = chat.SenderAI
)
