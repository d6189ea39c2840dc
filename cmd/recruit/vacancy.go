package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/vacancy"
)

func vacancyCommand() *cli.Command {
	return &cli.Command{
		Name:  "vacancy",
		Usage: "Manage vacancies and their candidate assignments",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every vacancy",
				Action: vacancyListCommand,
			},
			{
				Name:   "create",
				Usage:  "Create a vacancy",
				Action: vacancyCreateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "role",
						Usage:    "Role category the vacancy hires for",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Display title (defaults to the humanized role category)",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Free-form description",
					},
					&cli.StringSliceFlag{
						Name:  "skill",
						Usage: "Required skill (repeatable)",
					},
					&cli.Float64Flag{
						Name:  "min-experience",
						Usage: "Minimum years of experience",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Location requirement",
					},
					&cli.StringFlag{
						Name:  "work-auth",
						Usage: "Work authorization requirement",
					},
					&cli.StringFlag{
						Name:  "priority",
						Usage: "Priority (low, medium, high, urgent)",
					},
				},
			},
			{
				Name:   "matches",
				Usage:  "Rank stored candidates against a vacancy",
				Action: vacancyMatchesCommand,
				Flags: []cli.Flag{
					vacancyIdFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of candidates to rank",
						Value: 10,
					},
				},
			},
			{
				Name:   "assign",
				Usage:  "Assign a candidate to a vacancy",
				Action: vacancyAssignCommand,
				Flags: []cli.Flag{
					vacancyIdFlag(),
					&cli.StringFlag{
						Name:     "candidate",
						Usage:    "Candidate id",
						Required: true,
					},
				},
			},
			{
				Name:   "update",
				Usage:  "Move a vacancy's status and/or priority",
				Action: vacancyUpdateCommand,
				Flags: []cli.Flag{
					vacancyIdFlag(),
					&cli.StringFlag{
						Name:  "status",
						Usage: "New status (open, on-hold, closed, filled)",
					},
					&cli.StringFlag{
						Name:  "priority",
						Usage: "New priority (low, medium, high, urgent)",
					},
				},
			},
		},
	}
}

func vacancyIdFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Usage:    "Vacancy id",
		Required: true,
	}
}

func vacancyListCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	vacancies, err := sys.VacancyRepository().ListVacancies(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list vacancies: %w", err)
	}
	if len(vacancies) == 0 {
		fmt.Println("No vacancies")
		return nil
	}
	for _, v := range vacancies {
		fmt.Printf("%s  %-9s %-7s %s (%d assigned)\n",
			v.Id, v.Status, v.Priority, v.Title, len(v.CandidateIds))
	}
	return nil
}

func vacancyCreateCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	v := &core.Vacancy{
		Title:         c.String("title"),
		RoleCategory:  c.String("role"),
		Description:   c.String("description"),
		Skills:        c.StringSlice("skill"),
		MinExperience: c.Float64("min-experience"),
		Location:      c.String("location"),
		WorkAuth:      c.String("work-auth"),
	}
	if p := c.String("priority"); p != "" {
		priority, err := vacancy.ParsePriority(p)
		if err != nil {
			return err
		}
		v.Priority = priority
	}

	created, err := sys.VacancyManager().Create(c.Context, v)
	if err != nil {
		return fmt.Errorf("failed to create vacancy: %w", err)
	}
	fmt.Printf("Created vacancy %s: %s (%s, %s)\n",
		created.Id, created.Title, created.Status, created.Priority)
	return nil
}

func vacancyMatchesCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	matches, err := sys.VacancyManager().Matches(c.Context, c.String("id"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}
	if len(matches) == 0 {
		fmt.Println("No matching candidates")
		return nil
	}
	for i, m := range matches {
		p := m.Profile
		fmt.Printf("%d: %s (%d) score=%.0f\n", i+1, p.Name, p.Id, m.Score)
		if p.CurrentTitle != "" || p.RoleCategory != "" {
			fmt.Printf("   %s [%s], %.1f yrs\n", p.CurrentTitle, p.RoleCategory, p.ExperienceYears)
		}
	}
	return nil
}

func vacancyAssignCommand(c *cli.Context) error {
	candidateId, err := strconv.ParseUint(c.String("candidate"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid candidate id %q", c.String("candidate"))
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	updated, err := sys.VacancyManager().Assign(c.Context, c.String("id"), core.ID(candidateId))
	if err != nil {
		return fmt.Errorf("failed to assign candidate: %w", err)
	}
	fmt.Printf("Assigned candidate %d to vacancy %s (%d assigned)\n",
		candidateId, updated.Id, len(updated.CandidateIds))
	return nil
}

func vacancyUpdateCommand(c *cli.Context) error {
	statusStr := c.String("status")
	priorityStr := c.String("priority")
	if statusStr == "" && priorityStr == "" {
		return fmt.Errorf("at least one of --status or --priority is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	id := c.String("id")
	var updated *core.Vacancy
	if statusStr != "" {
		status, err := vacancy.ParseStatus(statusStr)
		if err != nil {
			return err
		}
		if updated, err = sys.VacancyManager().UpdateStatus(c.Context, id, status); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
	}
	if priorityStr != "" {
		priority, err := vacancy.ParsePriority(priorityStr)
		if err != nil {
			return err
		}
		if updated, err = sys.VacancyManager().UpdatePriority(c.Context, id, priority); err != nil {
			return fmt.Errorf("failed to update priority: %w", err)
		}
	}

	fmt.Printf("Vacancy %s: %s, %s\n", updated.Id, updated.Status, updated.Priority)
	return nil
}
