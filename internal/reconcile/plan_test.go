package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kitout-dev/kitout/internal/profile"
)

func TestBuildPlanOrdersGroupsDeterministically(t *testing.T) {
	t.Parallel()

	c, _ := testCatalog(t)
	in := PlanInputs{Catalog: c, Flags: profile.FeatureFlags{Docker: true, SQLTools: true}, RefreshSources: true, Upgrade: true}

	plan := BuildPlan(in)
	require.Equal(t, BuildPlan(in), plan, "same inputs, same plan")

	var kinds []Kind
	for _, action := range plan.Actions {
		kinds = append(kinds, action.Kind)
	}
	require.Equal(t, []Kind{
		KindUpdateSources,
		KindInstallPackage, KindInstallPackage, KindInstallPackage, KindInstallPackage,
		KindUpgradeAll,
		KindInstallExtension, KindInstallExtension,
		KindConfigPatch,
		KindPathAdd, KindPathAdd,
	}, kinds)

	require.Equal(t, "docker-desktop", plan.Actions[4].Target)
	require.Contains(t, plan.Actions[4].Rationale, "docker")
	require.Equal(t, "ms-mssql.mssql", plan.Actions[7].Target)
	require.Contains(t, plan.Actions[7].Rationale, "sql_tools")
}

func TestBuildPlanRationaleNamesGroups(t *testing.T) {
	t.Parallel()

	c, _ := testCatalog(t)
	plan := BuildPlan(PlanInputs{Catalog: c, Flags: profile.FeatureFlags{}})

	require.Contains(t, plan.Actions[0].Rationale, "core")
	for _, action := range plan.Actions {
		require.NotEmpty(t, action.Rationale)
	}
}
