package main

import (
	"fmt"

	"github.com/fwojciec/lexdoc"
	"github.com/fwojciec/lexdoc/fs"
	"github.com/fwojciec/lexdoc/github"
	"github.com/fwojciec/lexdoc/pipeline"
)

// ReposCmd fetches documentation files from the configured GitHub
// repositories into document files.
type ReposCmd struct {
	Repo       string `help:"Only fetch the repository named owner/name."`
	Aggressive bool   `help:"Use the larger per-repository fetch budget."`
	Token      string `env:"GITHUB_TOKEN" help:"GitHub bearer token (raises the API quota)."`
}

func (c *ReposCmd) Run(deps *Dependencies) error {
	client := github.NewClient(deps.Ctx, c.Token)

	fetcher := &github.RepoFetcher{
		Client:     client,
		Budget:     github.NewRateBudget(client, c.Token != "", c.Aggressive),
		Aggressive: c.Aggressive,
		Logger:     deps.Logger,
	}

	p := &pipeline.Pipeline{
		Repos:       filterRepos(lexdoc.DefaultRepos(), c.Repo),
		RepoFetcher: fetcher,
		Writer:      fs.NewWriter(deps.documentsDir()),
		Logger:      deps.Logger,
	}

	stats, err := p.Run(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "fetched %d documents into %s\n", stats.Documents, deps.documentsDir())
	return nil
}

func filterRepos(repos []lexdoc.RepoDescriptor, fullName string) []lexdoc.RepoDescriptor {
	if fullName == "" {
		return repos
	}
	var out []lexdoc.RepoDescriptor
	for _, r := range repos {
		if r.FullName() == fullName {
			out = append(out, r)
		}
	}
	return out
}
