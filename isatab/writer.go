package isatab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteStudyModel serializes a fully mapped model into the ISA-Tab file
// set under dir: the investigation file, the samples table, one assay
// table and the metabolite assignment file. The directory is created if
// missing. Callers must only pass models from a successful pipeline
// run; a partially populated model must never be written.
func WriteStudyModel(m *StudyModel, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := map[string]string{
		"i_Investigation.txt":           investigationText(m),
		m.Study().FileName:              tableText(m.Study().SamplesTable),
		AssayFileName(m.Accession):      tableText(m.Study().AssayTable),
		AssignmentFileName(m.Accession): tableText(m.Study().AssignmentTable),
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// tableText renders a column-ordered table as TSV with a header row.
func tableText(t *Table) string {
	var sb strings.Builder
	cols := t.Columns()
	sb.WriteString(strings.Join(cols, "\t"))
	sb.WriteByte('\n')
	for row := 0; row < t.RowCount(); row++ {
		for i, c := range cols {
			if i > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(t.Value(c, row))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// investigationText renders the i_Investigation.txt sections.
func investigationText(m *StudyModel) string {
	inv := m.Investigation
	s := m.Study()
	var sb strings.Builder

	section := func(title string) { sb.WriteString(title + "\n") }
	line := func(key string, values ...string) {
		sb.WriteString(key)
		for _, v := range values {
			sb.WriteString("\t\"" + escapeValue(v) + "\"")
		}
		sb.WriteByte('\n')
	}

	section("ONTOLOGY SOURCE REFERENCE")
	var srcNames, srcFiles, srcVersions, srcDescs []string
	for _, ref := range inv.OntologySources {
		srcNames = append(srcNames, ref.SourceName)
		srcFiles = append(srcFiles, ref.SourceFile)
		srcVersions = append(srcVersions, ref.SourceVersion)
		srcDescs = append(srcDescs, ref.SourceDescription)
	}
	line("Term Source Name", srcNames...)
	line("Term Source File", srcFiles...)
	line("Term Source Version", srcVersions...)
	line("Term Source Description", srcDescs...)

	section("INVESTIGATION")
	line("Investigation Identifier", inv.Identifier)
	line("Investigation Title", inv.Title)
	line("Investigation Description", inv.Description)
	commentKeys := make([]string, 0, len(m.Comments))
	for k := range m.Comments {
		commentKeys = append(commentKeys, k)
	}
	sort.Strings(commentKeys)
	for _, k := range commentKeys {
		line(fmt.Sprintf("Comment[%s]", k), m.Comments[k])
	}

	section("STUDY")
	line("Study Identifier", s.Identifier)
	line("Study Title", s.Title)
	line("Study Description", s.Description)
	line("Study Submission Date", s.SubmissionDate)
	line("Study Public Release Date", s.PublicReleaseDate)
	line("Study File Name", s.FileName)

	section("STUDY PUBLICATIONS")
	var pubMed, doi, authors, titles, status, statusAcc, statusSrc []string
	for _, p := range s.Publications {
		pubMed = append(pubMed, p.PubMedID)
		doi = append(doi, p.DOI)
		authors = append(authors, p.AuthorList)
		titles = append(titles, p.Title)
		status = append(status, p.Status.Term)
		statusAcc = append(statusAcc, p.Status.TermAccession)
		statusSrc = append(statusSrc, p.Status.TermSourceRef)
	}
	line("Study PubMed ID", pubMed...)
	line("Study Publication DOI", doi...)
	line("Study Publication Author List", authors...)
	line("Study Publication Title", titles...)
	line("Study Publication Status", status...)
	line("Study Publication Status Term Accession Number", statusAcc...)
	line("Study Publication Status Term Source REF", statusSrc...)

	section("STUDY FACTORS")
	var facNames, facTypes, facAcc, facSrc []string
	for _, f := range s.Factors {
		facNames = append(facNames, f.Name)
		facTypes = append(facTypes, f.Type.Term)
		facAcc = append(facAcc, f.Type.TermAccession)
		facSrc = append(facSrc, f.Type.TermSourceRef)
	}
	line("Study Factor Name", facNames...)
	line("Study Factor Type", facTypes...)
	line("Study Factor Type Term Accession Number", facAcc...)
	line("Study Factor Type Term Source REF", facSrc...)

	section("STUDY ASSAYS")
	var aFiles, aMeas, aMeasAcc, aMeasSrc, aTech, aTechAcc, aTechSrc, aPlat []string
	for _, a := range s.Assays {
		aFiles = append(aFiles, a.FileName)
		aMeas = append(aMeas, a.MeasurementType.Term)
		aMeasAcc = append(aMeasAcc, a.MeasurementType.TermAccession)
		aMeasSrc = append(aMeasSrc, a.MeasurementType.TermSourceRef)
		aTech = append(aTech, a.TechnologyType.Term)
		aTechAcc = append(aTechAcc, a.TechnologyType.TermAccession)
		aTechSrc = append(aTechSrc, a.TechnologyType.TermSourceRef)
		aPlat = append(aPlat, a.TechnologyPlatform)
	}
	line("Study Assay File Name", aFiles...)
	line("Study Assay Measurement Type", aMeas...)
	line("Study Assay Measurement Type Term Accession Number", aMeasAcc...)
	line("Study Assay Measurement Type Term Source REF", aMeasSrc...)
	line("Study Assay Technology Type", aTech...)
	line("Study Assay Technology Type Term Accession Number", aTechAcc...)
	line("Study Assay Technology Type Term Source REF", aTechSrc...)
	line("Study Assay Technology Platform", aPlat...)

	section("STUDY PROTOCOLS")
	var pNames, pTypes, pTypeAcc, pTypeSrc, pDescs, pURIs, pVers, pParams []string
	for _, p := range s.Protocols {
		pNames = append(pNames, p.Name)
		pTypes = append(pTypes, p.ProtocolType.Term)
		pTypeAcc = append(pTypeAcc, p.ProtocolType.TermAccession)
		pTypeSrc = append(pTypeSrc, p.ProtocolType.TermSourceRef)
		pDescs = append(pDescs, p.Description)
		pURIs = append(pURIs, p.URI)
		pVers = append(pVers, p.Version)
		names := make([]string, 0, len(p.Parameters))
		for _, param := range p.Parameters {
			names = append(names, param.Term)
		}
		pParams = append(pParams, strings.Join(names, ";"))
	}
	line("Study Protocol Name", pNames...)
	line("Study Protocol Type", pTypes...)
	line("Study Protocol Type Term Accession Number", pTypeAcc...)
	line("Study Protocol Type Term Source REF", pTypeSrc...)
	line("Study Protocol Description", pDescs...)
	line("Study Protocol URI", pURIs...)
	line("Study Protocol Version", pVers...)
	line("Study Protocol Parameters Name", pParams...)

	section("STUDY CONTACTS")
	var last, first, mid, email, phone, affil, roles, roleAcc, roleSrc []string
	for _, c := range s.Contacts {
		last = append(last, c.LastName)
		first = append(first, c.FirstName)
		mid = append(mid, c.MidInitials)
		email = append(email, c.Email)
		phone = append(phone, c.Phone)
		affil = append(affil, c.Affiliation)
		var terms, accs, srcs []string
		for _, r := range c.Roles {
			terms = append(terms, r.Term)
			accs = append(accs, r.TermAccession)
			srcs = append(srcs, r.TermSourceRef)
		}
		roles = append(roles, strings.Join(terms, ";"))
		roleAcc = append(roleAcc, strings.Join(accs, ";"))
		roleSrc = append(roleSrc, strings.Join(srcs, ";"))
	}
	line("Study Person Last Name", last...)
	line("Study Person First Name", first...)
	line("Study Person Mid Initials", mid...)
	line("Study Person Email", email...)
	line("Study Person Phone", phone...)
	line("Study Person Affiliation", affil...)
	line("Study Person Roles", roles...)
	line("Study Person Roles Term Accession Number", roleAcc...)
	line("Study Person Roles Term Source REF", roleSrc...)

	return sb.String()
}

// escapeValue keeps investigation values single-line and quote-safe.
func escapeValue(v string) string {
	v = strings.ReplaceAll(v, "\"", "'")
	v = strings.ReplaceAll(v, "\t", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}
