package notify

import "golang.org/x/text/language"

var english = catalog{
	tag: language.English,
	templates: [numKeys]string{
		CreditsNoTechReceive: "(-p%0I)<<< Space Dock Message >>>\n\n" +
			"FROM: %0P\n  Starbase %0d\n\n" +
			"We do not have sufficient tech to\n" +
			"receive credit transfers.\n\n" +
			"Required total: %1d\n",
		CreditsNoTechSend: "(-p%0I)<<< Space Dock Message >>>\n\n" +
			"FROM: %0P\n  Starbase %0d\n\n" +
			"We do not have sufficient tech to\n" +
			"send credit transfers.\n\n" +
			"Required total: %1d\n",
		CreditsTransferred: "(-z%0I)<<< Space Dock Message >>>\n\n" +
			"FROM: %0P\n  Starbase %0d\n\n" +
			"We have transferred %2d mc\n" +
			"to the starbase at planet %1d,\n" +
			"%1P\n",

		MinefieldLaid: "(-l%1I)<<< Space Dock Message >>>\n\n" +
			"FROM: %0P\n  Starbase %0d\n\n" +
			"We have converted our\n" +
			"torpedoes into deep space mines\n" +
			layResultEN,
		MinefieldLaidWeb: "(-l%1I)<<< Space Dock Message >>>\n\n" +
			"FROM: %0P\n  Starbase %0d\n\n" +
			"We have converted our\n" +
			"torpedoes into web mines\n" +
			layResultEN,
		MinefieldSweptHeader: "(-p%0I)<<< Starbase Message >>>\n\n" +
			"From: %0P\n  Starbase %0d\n\n" +
			"Detected enemy mine field #%1d\n" +
			"at ( %2d, %3d )\n" +
			"They are %4A mines!\n" +
			"Minefield is %5d ly across.\n",
		MinefieldSweptHeaderWeb: "(-p%0I)<<< Starbase Message >>>\n\n" +
			"From: %0P\n  Starbase %0d\n\n" +
			"Detected enemy mine field #%1d\n" +
			"at ( %2d, %3d )\n" +
			"They are %4A WEB mines!\n" +
			"Minefield is %5d ly across.\n",
		MinefieldSweptBeams: "Using beam weapons to sweep mines.\n" +
			"%6d mines destroyed.\n" +
			"%7d units remain.\n",
		MinefieldSweptFighters: "Using fighters to sweep mines.\n" +
			"%6d mines destroyed.\n" +
			"%7d units remain.\n",
		MinefieldScoopedHeader: "(-p%0I)<<< Starbase Message >>>\n\n" +
			"From: %0P\n  Starbase %0d\n\n" +
			"Detected our mine field #%1d\n" +
			"at ( %2d, %3d )\n" +
			"Minefield is %4d ly across.\n",
		MinefieldScoopedHeaderWeb: "(-p%0I)<<< Starbase Message >>>\n\n" +
			"From: %0P\n  Starbase %0d\n\n" +
			"Detected our WEB mine field #%1d\n" +
			"at ( %2d, %3d )\n" +
			"Minefield is %4d ly across.\n",
		MinefieldScooped: "Gathering mines.\n" +
			"We made %5d torpedoes.\n",

		LoadNotPermitted: fleetHeaderEN +
			"We were ordered to load starship parts.\n" +
			"Unfortunately, our ship is not able\n" +
			"to carry starship parts.\n",
		LoadNoParts: fleetHeaderEN +
			"We were ordered to load starship parts.\n" +
			"Unfortunately, the starbase #%1d\n" +
			"at %1P\n" +
			"did not have any matching parts\n" +
			"in storage.\n",
		LoadConflict: fleetHeaderEN +
			"We were ordered to load starship parts.\n" +
			"Unfortunately, we already have parts of\n" +
			"a different type aboard and cannot\n" +
			"load another type.\n",
		LoadNoSpace: fleetHeaderEN +
			"We were ordered to load starship parts.\n" +
			"Unfortunately, we didn't have any space\n" +
			"in our cargo room to take the parts.\n",
		LoadSuccess: fleetHeaderEN +
			"We have successfully loaded %2d parts\n" +
			"from starbase #%1d\n" +
			"at %1P\n",
		UnloadNoParts: fleetHeaderEN +
			"We were ordered to unload starship\n" +
			"parts, but did not have anything\n" +
			"to unload.\n",
		UnloadSuccess: fleetHeaderEN +
			"We have unloaded %2d parts\n" +
			"to starbase #%1d\n" +
			"at %1P\n",
		TrimmedComponents: fleetHeaderEN +
			"We are overloaded!\n" +
			"We had to jettison %1d parts\n" +
			"weighing %2d kt total!\n",
		TrimmedCargo: fleetHeaderEN +
			"We are overloaded!\n" +
			"We had to jettison %1d kt cargo!\n",
		TransportReport: "(-f%0I)<<< Special Transport >>>\n\n" +
			"FROM: %0S\n  Ship %0d\n\n" +
			"We are currently carrying components\n" +
			"with a total weight of %1d kt:\n",
		TransportReportContinued: "(-f%0I)<<< Special Transport >>>\n\n" +
			"(continued inventory)\n",

		ConfigReport: "(-h000)<<< Starbase Reloaded >>>\n\n" +
			"Current configuration:\n",
		ConfigReportContinued: "(-h000)<<< Starbase Reloaded >>>\n\n" +
			"(continued configuration)\n",

		ContinuedOnNextPage: "(continued on next page)\n",
	},
}

const (
	fleetHeaderEN = "(-s%0I)<<< Fleet Message >>>\n\n" +
		"FROM: %0S\n  Ship %0d\n\n"

	layResultEN = "and laid them in a field centered\n" +
		"at ( %2d , %3d )\n" +
		" %4d mines were laid\n" +
		"Mine field ID# %1d now contains\n" +
		" %5d mine units and is\n" +
		" %6d light years in radius\n"
)
