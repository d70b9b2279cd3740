// Package shared contains helpers used by multiple use cases.
package shared

import (
	"context"

	"github.com/hmendes/storyflow/internal/domain"
)

// BranchSyncResult describes what VerifyBranch did to the working tree.
type BranchSyncResult struct {
	Branch       string // The story branch the tree ended up on
	SwitchedFrom string // Previous branch, empty when already on target
	Created      bool   // True when the story branch was created from base
	Stashed      bool   // True when uncommitted work was stashed and popped
}

// VerifyBranch reconciles the working tree with the branch the story
// requires:
//
//  1. Already on the story branch: no-op.
//  2. The branch exists locally: plain checkout.
//  3. Otherwise: stash uncommitted work if any, check out the base branch,
//     pull, create the story branch from base, pop the stash.
//
// The sequence is one logical operation: any git failure aborts it with a
// GitOperationError and the caller re-runs. Re-running after a partial
// failure is safe; a tree already switched to base or target is detected
// and never re-stashed.
func VerifyBranch(ctx context.Context, git domain.Git, story *domain.Story, baseBranch string) (*BranchSyncResult, error) {
	expected := domain.ExpectedBranch(story.ID, story.Title)

	current, err := git.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	if current == expected {
		return &BranchSyncResult{Branch: expected}, nil
	}

	exists, err := git.BranchExists(ctx, expected)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := git.Checkout(ctx, expected); err != nil {
			return nil, err
		}
		return &BranchSyncResult{Branch: expected, SwitchedFrom: current}, nil
	}

	dirty, err := git.HasUncommittedChanges(ctx)
	if err != nil {
		return nil, err
	}
	if dirty {
		if err := git.StashPush(ctx, domain.StashMessage(expected)); err != nil {
			return nil, err
		}
	}

	if current != baseBranch {
		if err := git.Checkout(ctx, baseBranch); err != nil {
			return nil, err
		}
	}
	if err := git.Pull(ctx); err != nil {
		return nil, err
	}
	if err := git.CreateBranch(ctx, expected); err != nil {
		return nil, err
	}
	if dirty {
		if err := git.StashPop(ctx); err != nil {
			return nil, err
		}
	}

	return &BranchSyncResult{
		Branch:       expected,
		SwitchedFrom: current,
		Created:      true,
		Stashed:      dirty,
	}, nil
}

// CheckBranch verifies that the working tree is on the branch the story
// requires without mutating anything. A mismatch is a WrongBranchError
// carrying the remediation command.
func CheckBranch(ctx context.Context, git domain.Git, story *domain.Story) error {
	expected := domain.ExpectedBranch(story.ID, story.Title)
	current, err := git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current != expected {
		return &domain.WrongBranchError{Current: current, Expected: expected}
	}
	return nil
}
